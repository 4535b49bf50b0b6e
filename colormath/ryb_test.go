package colormath

import "testing"

func TestRYBCorners(t *testing.T) {
	r, g, b := RYBToRGB(1, 0, 0)
	if !closeEnough(r, 1, 1e-9) || !closeEnough(g, 0, 1e-9) || !closeEnough(b, 0, 1e-9) {
		t.Errorf("pure red wheel corner = (%v,%v,%v), want (1,0,0)", r, g, b)
	}

	r, g, b = RYBToRGB(0, 0, 1)
	if !closeEnough(r, 0, 1e-9) || !closeEnough(g, 0, 1e-9) || !closeEnough(b, 1, 1e-9) {
		t.Errorf("pure blue wheel corner = (%v,%v,%v), want (0,0,1)", r, g, b)
	}
}

func TestRGBToRYBApproximatelyInverts(t *testing.T) {
	ry, yl, bl := RGBToRYB(1, 0, 0)
	r, g, b := RYBToRGB(ry, yl, bl)
	if !closeEnough(r, 1, 0.05) || !closeEnough(g, 0, 0.05) || !closeEnough(b, 0, 0.05) {
		t.Errorf("RYB coordinate descent for red got RGB (%v,%v,%v)", r, g, b)
	}
}
