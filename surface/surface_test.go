package surface

import (
	"testing"

	"github.com/inkwell/paintcore"
	"github.com/inkwell/paintcore/symmetry"
	"github.com/inkwell/paintcore/tile"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func newTestSurface() (*Surface, *tile.Store) {
	store := tile.NewStore()
	s := New(store, WithRandSource(fixedRand(0)))
	return s, store
}

func fullOpaqueDab(x, y float64) DabParams {
	return DabParams{
		X: x, Y: y, Radius: 8,
		R: tile.MaxChannel, G: 0, B: 0, A: tile.MaxChannel,
		Opaque: 1, Hardness: 1, Aspect: 1,
	}
}

func TestDrawDabThenEndAtomicPaints(t *testing.T) {
	s, _ := newTestSurface()
	s.BeginAtomic()
	s.DrawDab(fullOpaqueDab(32, 32))
	var rects []tile.Rect
	s.EndAtomic(&rects)

	c := s.GetColor(32, 32, 2, 1)
	if c.R < 0.9 || c.G > 0.1 || c.B > 0.1 || c.A < 0.9 {
		t.Errorf("GetColor after painting a red dab = %+v, want approximately (1,0,0,1)", c)
	}
	if len(rects) == 0 {
		t.Error("EndAtomic reported no dirty rectangles after a paint")
	}
}

func TestGetColorOnUntouchedSurfaceIsSentinel(t *testing.T) {
	s, _ := newTestSurface()
	c := s.GetColor(1000, 1000, 4, 1)
	if c != paintcore.Sentinel {
		t.Errorf("GetColor on blank surface = %+v, want sentinel %+v", c, paintcore.Sentinel)
	}
}

func TestDrawDabRejectsDegenerateInputs(t *testing.T) {
	s, _ := newTestSurface()
	s.BeginAtomic()
	s.DrawDab(DabParams{X: 10, Y: 10, Radius: 0.05, Opaque: 1, Hardness: 1, Aspect: 1})
	s.DrawDab(DabParams{X: 10, Y: 10, Radius: 5, Opaque: 1, Hardness: 0, Aspect: 1})
	s.DrawDab(DabParams{X: 10, Y: 10, Radius: 5, Opaque: 0, Hardness: 1, Aspect: 1})
	var rects []tile.Rect
	s.EndAtomic(&rects)

	c := s.GetColor(10, 10, 2, 1)
	if c != paintcore.Sentinel {
		t.Errorf("degenerate draw_dab calls painted something: %+v", c)
	}
}

func TestSymmetryFansOutAcrossTiles(t *testing.T) {
	s, _ := newTestSurface()
	s.SetSymmetry(symmetry.State{Type: symmetry.Vertical, CenterX: 0, Active: true})
	s.BeginAtomic()
	s.DrawDab(fullOpaqueDab(20, 20))
	var rects []tile.Rect
	s.EndAtomic(&rects)

	if len(rects) != 2 {
		t.Fatalf("expected 2 dirty rects (primary + one mirror clone), got %d", len(rects))
	}

	mirror := s.GetColor(-20, 20, 2, 1)
	if mirror.R < 0.9 || mirror.A < 0.9 {
		t.Errorf("mirrored dab at (-20,20) = (r=%v,a=%v), want painted red", mirror.R, mirror.A)
	}
}

func TestEndAtomicEmptiesTheQueue(t *testing.T) {
	s, _ := newTestSurface()
	s.BeginAtomic()
	s.DrawDab(fullOpaqueDab(5, 5))
	var rects []tile.Rect
	s.EndAtomic(&rects)
	if !s.ops.Empty() {
		t.Error("operation queue not empty after EndAtomic")
	}

	var more []tile.Rect
	s.EndAtomic(&more)
	if len(more) != 0 {
		t.Errorf("second EndAtomic with no new dabs reported %d rects, want 0", len(more))
	}
}

func TestBeginAtomicCommitsPendingSymmetry(t *testing.T) {
	s, _ := newTestSurface()
	s.SetSymmetry(symmetry.State{Type: symmetry.Vertical, Active: true})
	if len(s.sym.Matrices()) != 0 {
		t.Error("symmetry took effect before BeginAtomic committed it")
	}
	s.BeginAtomic()
	if len(s.sym.Matrices()) != 1 {
		t.Errorf("symmetry matrices after commit = %d, want 1", len(s.sym.Matrices()))
	}
}
