package colormath

import "math"

// RGBToHSL converts straight RGB in [0,1] to HSL: hue in [0,360),
// saturation and lightness in [0,1].
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	l = (maxc + minc) / 2
	delta := maxc - minc
	if delta == 0 {
		return 0, 0, l
	}

	if l <= 0.5 {
		s = delta / (maxc + minc)
	} else {
		s = delta / (2 - maxc - minc)
	}

	switch maxc {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, l
}

// HSLToRGB converts HSL (hue in [0,360), saturation/lightness in [0,1])
// to straight RGB in [0,1].
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360

	r = hueToRGB(p, q, hk+1.0/3)
	g = hueToRGB(p, q, hk)
	b = hueToRGB(p, q, hk-1.0/3)
	return r, g, b
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
