package symmetry

import (
	"math"
	"testing"

	"github.com/inkwell/paintcore"
)

func TestMatrixCountPerType(t *testing.T) {
	tests := []struct {
		s    State
		want int
	}{
		{State{Type: Vertical, Active: true}, 1},
		{State{Type: Horizontal, Active: true}, 1},
		{State{Type: VertHorz, Active: true}, 3},
		{State{Type: Rotational, NumLines: 5, Active: true}, 4},
		{State{Type: Snowflake, NumLines: 3, Active: true}, 5},
	}
	for _, tt := range tests {
		got := Matrices(tt.s)
		if len(got) != tt.want {
			t.Errorf("Matrices(%+v) returned %d matrices, want %d", tt.s, len(got), tt.want)
		}
	}
}

func TestInactiveProducesNoMatrices(t *testing.T) {
	s := State{Type: Vertical, Active: false}
	if got := Matrices(s); got != nil {
		t.Errorf("inactive state produced %d matrices, want 0", len(got))
	}
}

func TestVerticalReflectionAboutCenter(t *testing.T) {
	s := State{Type: Vertical, CenterX: 10, CenterY: 0, Active: true}
	ms := Matrices(s)
	p := ms[0].TransformPoint(paintcore.Pt(14, 5))
	if !closeEnough(p.X, 6, 1e-9) || !closeEnough(p.Y, 5, 1e-9) {
		t.Errorf("vertical reflection of (14,5) about cx=10 = %v, want (6,5)", p)
	}
}

func TestRotationalStepAngle(t *testing.T) {
	s := State{Type: Rotational, NumLines: 4, CenterX: 0, CenterY: 0, Active: true}
	ms := Matrices(s)
	p := ms[0].TransformPoint(paintcore.Pt(1, 0))
	if !closeEnough(p.X, 0, 1e-9) || !closeEnough(p.Y, 1, 1e-9) {
		t.Errorf("first rotational clone of (1,0) = %v, want (0,1) (90 degree step)", p)
	}
}

func TestAngleNormalizedForRotationalAndSnowflake(t *testing.T) {
	s := State{Type: Rotational, NumLines: 4, Angle: -0.5}
	got := s.Normalize().Angle
	if got < 0 || got >= 2*math.Pi {
		t.Errorf("normalized angle %v not in [0, 2pi)", got)
	}
}

func TestAngleLeftAloneForMirrorTypes(t *testing.T) {
	s := State{Type: Vertical, Angle: -0.5}
	got := s.Normalize().Angle
	if got != -0.5 {
		t.Errorf("Vertical's angle was normalized to %v, want unchanged -0.5", got)
	}
}

func TestEngineCommitIsDeferred(t *testing.T) {
	e := NewEngine()
	e.Set(State{Type: Vertical, Active: true})
	if e.Current().Active {
		t.Error("Current() reflects a pending Set before Commit")
	}
	e.Commit()
	if !e.Current().Active {
		t.Error("Current() did not pick up the committed state")
	}
}

func TestEngineMatricesCached(t *testing.T) {
	e := NewEngine()
	e.Set(State{Type: VertHorz, CenterX: 5, CenterY: 5, Active: true})
	e.Commit()
	a := e.Matrices()
	b := e.Matrices()
	if len(a) != len(b) {
		t.Fatalf("cached matrices length changed between calls: %d vs %d", len(a), len(b))
	}
}

func closeEnough(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
