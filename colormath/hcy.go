package colormath

import "math"

// HCYLumaR, HCYLumaG, HCYLumaB are the luma coefficients HCY conversion
// uses (§4.E, §6 config constants) — distinct from the Rec.709-style
// 0.2126/0.7152/0.0722 the Color blend kernel uses for luminance.
const (
	HCYLumaR = 0.3
	HCYLumaG = 0.59
	HCYLumaB = 0.11
)

func hcyLuma(r, g, b float64) float64 {
	return HCYLumaR*r + HCYLumaG*g + HCYLumaB*b
}

// RGBToHCY converts straight RGB in [0,1] to hue/chroma/luma: hue in
// [0,360), chroma and luma in [0,1].
func RGBToHCY(r, g, b float64) (h, c, y float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	c = maxc - minc
	y = hcyLuma(r, g, b)
	if c == 0 {
		return 0, 0, y
	}

	switch maxc {
	case r:
		h = math.Mod((g-b)/c, 6)
	case g:
		h = (b-r)/c + 2
	default:
		h = (r-g)/c + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, c, y
}

// HCYToRGB is the inverse of RGBToHCY. Given hue, chroma, and the target
// luma, it reconstructs RGB by first building a zero-luma chroma
// triple, then shifting every channel by the same amount until the
// triple's luma matches y, then clamping each channel to [0,1] on its
// own. That clamp can change the luma, unlike the Color blend kernel's
// ClipColor, which pulls out-of-gamut channels toward the luma instead.
func HCYToRGB(h, c, y float64) (r, g, b float64) {
	hp := math.Mod(h, 360) / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r1, g1, b1 float64
	switch {
	case hp < 1:
		r1, g1, b1 = c, x, 0
	case hp < 2:
		r1, g1, b1 = x, c, 0
	case hp < 3:
		r1, g1, b1 = 0, c, x
	case hp < 4:
		r1, g1, b1 = 0, x, c
	case hp < 5:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}

	m := y - hcyLuma(r1, g1, b1)
	r, g, b = r1+m, g1+m, b1+m
	return clampUnit(r), clampUnit(g), clampUnit(b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
