package brush

import (
	"math"

	"github.com/inkwell/paintcore"
	"github.com/inkwell/paintcore/colormath"
)

// RGBA is the straight-alpha color the mixer and smudge buckets work in:
// R, G, B, A all in [0, 1], RGB not premultiplied by A. It is the same
// type get_color returns and DrawDab's DabParams is built from, so a
// color can cross brush/surface/getcolor boundaries without conversion.
type RGBA = paintcore.RGBA

// MixColors blends color a into color b (b "underneath") by fraction
// fac of a (§4.J "color/smudge mixer"). gamma lifts fac by a power
// before use, matching the dynamics engine's curve-shaping of blend
// factors. normsub selects how much of the per-space blend is additive
// (0) versus weighted-geometric-mean subtractive (1); spectral selects
// how much of the result comes from a 10-band spectral mix (1) versus a
// plain RGB mix (0). desat and darken scale an optional HCY-based
// desaturation and luma pull toward b, proportional to how far a's and
// b's hues differ and to a fac-triangular function that vanishes at
// fac=0 and fac=1. MixColors does not allocate.
func MixColors(a, b RGBA, fac, gamma, normsub, spectral, desat, darken float64) RGBA {
	if gamma != 1 {
		fac = math.Pow(clamp01(fac), gamma)
	}
	fac = clamp01(fac)

	rgbR, rgbG, rgbB := mixChannel(a, b, fac, normsub)
	var specR, specG, specB float64
	if spectral > 0 {
		specR, specG, specB = mixSpectral(a, b, fac, normsub)
	}

	r := rgbR*(1-spectral) + specR*spectral
	g := rgbG*(1-spectral) + specG*spectral
	bl := rgbB*(1-spectral) + specB*spectral
	alpha := a.A*fac + b.A*(1-fac)

	r, g, bl = desaturateTowardHueDifference(a, b, fac, desat, darken, r, g, bl)

	return RGBA{R: clamp01(r), G: clamp01(g), B: clamp01(bl), A: clamp01(alpha)}
}

// mixChannel blends a and b's RGB directly, convex-combining an
// additive mix with a weighted-geometric-mean subtractive mix by
// normsub.
func mixChannel(a, b RGBA, fac, normsub float64) (r, g, bl float64) {
	subfac := subtractiveFactor(a.A, b.A, fac)
	add := func(x, y float64) float64 { return x*fac + y*(1-fac) }
	sub := func(x, y float64) float64 {
		if x <= 0 || y <= 0 {
			return add(x, y)
		}
		return math.Pow(x, subfac) * math.Pow(y, 1-subfac)
	}
	r = add(a.R, b.R)*(1-normsub) + sub(a.R, b.R)*normsub
	g = add(a.G, b.G)*(1-normsub) + sub(a.G, b.G)*normsub
	bl = add(a.B, b.B)*(1-normsub) + sub(a.B, b.B)*normsub
	return r, g, bl
}

// mixSpectral is mixChannel's analogue in the 10-band reflectance
// space: both colors are converted to spectral reflectance, blended
// band by band, then converted back.
func mixSpectral(a, b RGBA, fac, normsub float64) (r, g, bl float64) {
	sa := colormath.RGBToSpectral(a.R, a.G, a.B)
	sb := colormath.RGBToSpectral(b.R, b.G, b.B)
	subfac := subtractiveFactor(a.A, b.A, fac)

	var mixed [colormath.SpectralBands]float64
	for i := range mixed {
		add := sa[i]*fac + sb[i]*(1-fac)
		var sub float64
		if sa[i] <= 0 || sb[i] <= 0 {
			sub = add
		} else {
			sub = math.Pow(sa[i], subfac) * math.Pow(sb[i], 1-subfac)
		}
		mixed[i] = add*(1-normsub) + sub*normsub
	}
	return colormath.SpectralToRGB(mixed)
}

// subtractiveFactor is the alpha-weighted blend fraction the weighted
// geometric mean uses in place of the plain fac: a color with more
// alpha pulls the subtractive mix harder toward itself.
func subtractiveFactor(alphaA, alphaB, fac float64) float64 {
	weightedA := alphaA * fac
	weightedB := alphaB * (1 - fac)
	denom := weightedA + weightedB
	if denom <= 0 {
		return fac
	}
	return weightedA / denom
}

// desaturateTowardHueDifference pulls the mixed color's chroma down by
// desat and its luma toward b's by darken, proportional to how far a's
// and b's hues differ and to a triangular function of fac that is zero
// at fac=0 and fac=1 and peaks at fac=0.5 — the two colors being mixed
// in roughly equal parts is when a naive RGB/spectral mix looks
// muddiest next to a real pigment mix, so the correction is strongest
// there.
func desaturateTowardHueDifference(a, b RGBA, fac, desat, darken, r, g, bl float64) (outR, outG, outB float64) {
	if desat <= 0 && darken <= 0 {
		return r, g, bl
	}
	ha, _, _ := colormath.RGBToHCY(a.R, a.G, a.B)
	hb, _, _ := colormath.RGBToHCY(b.R, b.G, b.B)
	diff := math.Abs(ha - hb)
	if diff > 180 {
		diff = 360 - diff
	}
	triangular := 1 - math.Abs(2*fac-1)
	strength := (diff / 180) * triangular
	if strength <= 0 {
		return r, g, bl
	}

	h, c, y := colormath.RGBToHCY(r, g, bl)
	yb := colormath.HCYLumaR*b.R + colormath.HCYLumaG*b.G + colormath.HCYLumaB*b.B
	desatAmount := clamp01(desat * strength)
	darkenAmount := clamp01(darken * strength)
	return colormath.HCYToRGB(h, c*(1-desatAmount), y*(1-darkenAmount)+yb*darkenAmount)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
