package paintcore

import "testing"

func TestPtConstructsPoint(t *testing.T) {
	p := Pt(3, -4)
	if p.X != 3 || p.Y != -4 {
		t.Errorf("Pt(3,-4) = %+v, want {3 -4}", p)
	}
}
