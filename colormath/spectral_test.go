package colormath

import "testing"

func TestSpectralRoundTripInGamut(t *testing.T) {
	cases := [][3]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{1, 1, 1}, {0, 0, 0}, {0.5, 0.5, 0.5},
		{0.8, 0.2, 0.4},
	}
	const eps = 3.0 / 32768 // spec's +/-3 of 2^15 tolerance, in [0,1] units
	for _, c := range cases {
		s := RGBToSpectral(c[0], c[1], c[2])
		r, g, b := SpectralToRGB(s)
		if !closeEnough(r, c[0], eps) || !closeEnough(g, c[1], eps) || !closeEnough(b, c[2], eps) {
			t.Errorf("spectral round trip for %v got (%v,%v,%v)", c, r, g, b)
		}
	}
}

func TestSpectralBandsClamped(t *testing.T) {
	s := RGBToSpectral(2, -1, 0.5)
	for i, v := range s {
		if v < 0 || v > 1 {
			t.Errorf("band %d = %v, want in [0,1]", i, v)
		}
	}
}
