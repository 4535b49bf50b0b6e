package colormath

import "testing"

func TestHSLRoundTrip(t *testing.T) {
	cases := [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.2, 0.6, 0.9}, {0.5, 0.5, 0.5}}
	for _, c := range cases {
		h, s, l := RGBToHSL(c[0], c[1], c[2])
		r, g, b := HSLToRGB(h, s, l)
		if !closeEnough(r, c[0], 1e-9) || !closeEnough(g, c[1], 1e-9) || !closeEnough(b, c[2], 1e-9) {
			t.Errorf("HSL round trip for %v got (%v,%v,%v)", c, r, g, b)
		}
	}
}
