package blend

import (
	"math"

	"github.com/inkwell/paintcore/colormath"
	"github.com/inkwell/paintcore/mask"
	"github.com/inkwell/paintcore/tile"
)

// Kind selects which of the five dab compositing recipes to apply.
type Kind int

const (
	Normal Kind = iota
	Eraser
	LockAlpha
	Color
	Posterize
)

// Variant selects additive (straight alpha-weighted average) or
// spectral-pigment (reflectance-domain) color mixing.
type Variant int

const (
	Additive Variant = iota
	Pigment
)

// Params carries the per-dab values a kernel needs beyond the mask word
// and the destination pixel: the premultiplied source color, the overall
// dab opacity, and the handful of kernel-specific extras.
type Params struct {
	Src          [4]uint16 // premultiplied source dab color
	Opacity      uint16    // overall dab opacity O, in [0, maxChannel]
	EraserAlpha  uint16    // eraser_target_alpha, used only by Eraser
	PosterizeNum int       // quantization level count, used only by Posterize
}

// Func blends one covered pixel (given its mask word m) into dst in place.
type Func func(dst *[4]uint16, m uint16, p Params)

// Get returns the blend function for a (kind, variant) pair. Color and
// Posterize describe a single recipe in the source material rather than
// a distinct additive/pigment pair, so both variants alias that recipe.
func Get(kind Kind, variant Variant) Func {
	switch kind {
	case Normal:
		if variant == Pigment {
			return normalPigment
		}
		return normalAdditive
	case Eraser:
		if variant == Pigment {
			return eraserPigment
		}
		return eraserAdditive
	case LockAlpha:
		if variant == Pigment {
			return lockAlphaPigment
		}
		return lockAlphaAdditive
	case Color:
		return colorKernel
	case Posterize:
		return posterizeKernel
	default:
		return normalAdditive
	}
}

// Apply walks mk's RLE runs over px, blending each covered pixel with fn.
// Skip runs advance the pixel cursor without touching the buffer.
func Apply(px *tile.Tile, mk *mask.Mask, fn Func, p Params) {
	idx := 0
	for run := range mk.Runs() {
		if run.Skip > 0 {
			idx += run.Skip
			continue
		}
		off := idx * 4
		var px4 [4]uint16
		px4[0], px4[1], px4[2], px4[3] = px.Pix[off], px.Pix[off+1], px.Pix[off+2], px.Pix[off+3]
		fn(&px4, run.Opacity, p)
		px.Pix[off], px.Pix[off+1], px.Pix[off+2], px.Pix[off+3] = px4[0], px4[1], px4[2], px4[3]
		idx++
	}
}

func opacityA(m, o uint16) uint16 {
	return mulShift15U16(m, o)
}

// normalAdditive composites the source over the destination. The alpha
// channel is treated as if the source's own alpha is always fully present
// (maxChannel) since the dab's effective strength is already folded into
// opa_a via the mask word and overall opacity.
func normalAdditive(dst *[4]uint16, m uint16, p Params) {
	opaA := opacityA(m, p.Opacity)
	opaB := uint16(maxChannel) - opaA
	srcFull := [4]uint16{p.Src[0], p.Src[1], p.Src[2], maxChannel}
	for i := range dst {
		add := mulShift15(uint32(opaA), uint32(srcFull[i]))
		keep := mulShift15(uint32(opaB), uint32(dst[i]))
		dst[i] = uint16(add + keep)
	}
}

func eraserAdditive(dst *[4]uint16, m uint16, p Params) {
	opaA := opacityA(m, p.Opacity)
	opaA = mulShift15U16(opaA, p.EraserAlpha)
	opaB := uint16(maxChannel) - opaA
	for i := range dst {
		dst[i] = mulShift15U16(opaB, dst[i])
	}
}

func lockAlphaAdditive(dst *[4]uint16, m uint16, p Params) {
	opaA := opacityA(m, p.Opacity)
	opaA = mulShift15U16(opaA, dst[3])
	opaB := uint32(maxChannel) - uint32(opaA)
	for i := 0; i < 3; i++ {
		add := mulShift15(uint32(opaA), uint32(p.Src[i]))
		keep := mulShift15(opaB, uint32(dst[i]))
		dst[i] = uint16(add + keep)
	}
}

// colorKernel recolorizes the destination's hue and saturation to match
// the source while preserving the destination's own luminance, then
// composites that recolorization over the destination with Normal's
// weights. It has no distinct pigment formulation in the source material.
func colorKernel(dst *[4]uint16, m uint16, p Params) {
	opaA := opacityA(m, p.Opacity)
	opaB := uint32(maxChannel) - uint32(opaA)

	da := dst[3]
	var dr, dg, db float32
	if da > 0 {
		dr = float32(dst[0]) / float32(da)
		dg = float32(dst[1]) / float32(da)
		db = float32(dst[2]) / float32(da)
	}
	sa := p.Src[3]
	var sr, sg, sb float32
	if sa > 0 {
		sr = float32(p.Src[0]) / float32(sa)
		sg = float32(p.Src[1]) / float32(sa)
		sb = float32(p.Src[2]) / float32(sa)
	}

	lumB := Lum(colorKernelLum, dr, dg, db)
	cr, cg, cb := SetLum(colorKernelLum, sr, sg, sb, lumB)

	recolored := [3]uint16{
		floatToChannel(cr),
		floatToChannel(cg),
		floatToChannel(cb),
	}
	for i := 0; i < 3; i++ {
		add := mulShift15(uint32(opaA), uint32(recolored[i]))
		keep := mulShift15(opaB, uint32(dst[i]))
		dst[i] = uint16(add + keep)
	}
	add := mulShift15(uint32(opaA), maxChannel)
	keep := mulShift15(opaB, uint32(da))
	dst[3] = uint16(add + keep)
}

// posterizeKernel quantizes the destination's straight RGB to a small
// number of levels and composites that quantized color in additively;
// alpha is left untouched.
func posterizeKernel(dst *[4]uint16, m uint16, p Params) {
	opaA := opacityA(m, p.Opacity)
	opaB := uint32(maxChannel) - uint32(opaA)

	levels := p.PosterizeNum
	if levels < 2 {
		levels = 2
	}
	da := dst[3]
	var dr, dg, db float32
	if da > 0 {
		dr = float32(dst[0]) / float32(da)
		dg = float32(dst[1]) / float32(da)
		db = float32(dst[2]) / float32(da)
	}

	quant := [3]uint32{
		uint32(clamp01f(posterizeChannel(dr, levels)) * float32(da)),
		uint32(clamp01f(posterizeChannel(dg, levels)) * float32(da)),
		uint32(clamp01f(posterizeChannel(db, levels)) * float32(da)),
	}
	for i := 0; i < 3; i++ {
		add := mulShift15(uint32(opaA), quant[i])
		keep := mulShift15(opaB, uint32(dst[i]))
		dst[i] = uint16(add + keep)
	}
}

func clamp01f(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func posterizeChannel(v float32, levels int) float32 {
	step := float32(1) / float32(levels-1)
	return float32(math.Round(float64(v/step))) * step
}

func floatToChannel(v float32) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(math.Round(float64(v) * maxChannel))
}

// minPigmentReflectance floors near-zero spectral reflectance bands before
// they enter a weighted geometric mean: a single zero band collapses the
// product to zero regardless of the other bands' weight, darkening the
// mix far more than intended.
const minPigmentReflectance = 150.0 / maxChannel

func floorReflectance(v float64) float64 {
	if v < minPigmentReflectance {
		return minPigmentReflectance
	}
	return v
}

func geometricMean(a, weightA, b, weightB float64) float64 {
	return math.Pow(floorReflectance(a), weightA) * math.Pow(floorReflectance(b), weightB)
}

func premultiplyF(straight float64, alpha uint16) uint16 {
	v := straight * float64(alpha)
	if v < 0 {
		v = 0
	}
	if v > maxChannel {
		v = maxChannel
	}
	return uint16(math.Round(v))
}

// normalPigment mixes colors as a weighted geometric mean of 10-band
// spectral reflectance rather than a linear RGB average, matching how
// physical pigments mix. The alpha channel updates identically to
// normalAdditive; a fully transparent destination has no color to convert
// to spectral, so it falls back to the additive formula.
func normalPigment(dst *[4]uint16, m uint16, p Params) {
	da := dst[3]
	if da == 0 {
		normalAdditive(dst, m, p)
		return
	}

	opaA := opacityA(m, p.Opacity)
	opaB := uint32(maxChannel) - uint32(opaA)

	denom := uint32(opaA) + mulShift15(opaB, uint32(da))
	if denom == 0 {
		normalAdditive(dst, m, p)
		return
	}
	newA := uint16(denom)
	facA := float64(opaA) / float64(denom)
	facA = clamp01(facA)
	facB := 1 - facA

	sa := p.Src[3]
	var sr, sg, sb float64
	if sa > 0 {
		sr = float64(p.Src[0]) / float64(sa)
		sg = float64(p.Src[1]) / float64(sa)
		sb = float64(p.Src[2]) / float64(sa)
	}
	dr := float64(dst[0]) / float64(da)
	dg := float64(dst[1]) / float64(da)
	db := float64(dst[2]) / float64(da)

	specSrc := colormath.RGBToSpectral(sr, sg, sb)
	specDst := colormath.RGBToSpectral(dr, dg, db)

	var mixed [colormath.SpectralBands]float64
	for i := range mixed {
		mixed[i] = geometricMean(specSrc[i], facA, specDst[i], facB)
	}

	r, g, b := colormath.SpectralToRGB(mixed)
	dst[0] = premultiplyF(r, newA)
	dst[1] = premultiplyF(g, newA)
	dst[2] = premultiplyF(b, newA)
	dst[3] = newA
}

// lockAlphaPigment is normalPigment with opa_a additionally weighted by
// the existing alpha and the alpha channel left untouched, mirroring the
// additive LockAlpha kernel's relationship to normalAdditive.
func lockAlphaPigment(dst *[4]uint16, m uint16, p Params) {
	da := dst[3]
	if da == 0 {
		return
	}
	opaA := opacityA(m, p.Opacity)
	opaA = mulShift15U16(opaA, da)
	opaB := uint32(maxChannel) - uint32(opaA)

	denom := uint32(opaA) + mulShift15(opaB, uint32(da))
	if denom == 0 {
		return
	}
	facA := clamp01(float64(opaA) / float64(denom))
	facB := 1 - facA

	sa := p.Src[3]
	var sr, sg, sb float64
	if sa > 0 {
		sr = float64(p.Src[0]) / float64(sa)
		sg = float64(p.Src[1]) / float64(sa)
		sb = float64(p.Src[2]) / float64(sa)
	}
	dr := float64(dst[0]) / float64(da)
	dg := float64(dst[1]) / float64(da)
	db := float64(dst[2]) / float64(da)

	specSrc := colormath.RGBToSpectral(sr, sg, sb)
	specDst := colormath.RGBToSpectral(dr, dg, db)

	var mixed [colormath.SpectralBands]float64
	for i := range mixed {
		mixed[i] = geometricMean(specSrc[i], facA, specDst[i], facB)
	}

	r, g, b := colormath.SpectralToRGB(mixed)
	dst[0] = premultiplyF(r, da)
	dst[1] = premultiplyF(g, da)
	dst[2] = premultiplyF(b, da)
}

// eraserPigment blends the additive erase result with a spectral erase
// (reflectance unmixed toward white rather than faded linearly toward
// black), combining the two by a smooth function of the pre-blend
// destination alpha so the transition stays continuous as alpha falls to
// zero.
func eraserPigment(dst *[4]uint16, m uint16, p Params) {
	origA := dst[3]

	addDst := *dst
	eraserAdditive(&addDst, m, p)

	specDst := addDst
	if origA > 0 {
		opaA := opacityA(m, p.Opacity)
		opaA = mulShift15U16(opaA, p.EraserAlpha)
		opaB := uint32(maxChannel) - uint32(opaA)

		denom := uint32(opaA) + mulShift15(opaB, uint32(origA))
		if denom > 0 {
			facA := clamp01(float64(opaA) / float64(denom))
			facB := 1 - facA

			dr := float64(dst[0]) / float64(origA)
			dg := float64(dst[1]) / float64(origA)
			db := float64(dst[2]) / float64(origA)
			specBottom := colormath.RGBToSpectral(dr, dg, db)
			specWhite := colormath.RGBToSpectral(1, 1, 1)

			var mixed [colormath.SpectralBands]float64
			for i := range mixed {
				mixed[i] = geometricMean(specWhite[i], facA, specBottom[i], facB)
			}
			r, g, b := colormath.SpectralToRGB(mixed)
			newA := addDst[3]
			specDst[0] = premultiplyF(r, newA)
			specDst[1] = premultiplyF(g, newA)
			specDst[2] = premultiplyF(b, newA)
			specDst[3] = newA
		}
	}

	factor := spectralFactor(origA)
	for i := range dst {
		dst[i] = lerpChannel(addDst[i], specDst[i], factor)
	}
}

// spectralFactor is the smooth additive/spectral mixing weight from the
// bottom alpha: spectral_factor(A) = 0.5 + b/(1+|b|*1.65), b = A/2^15*8-3.
func spectralFactor(a uint16) float64 {
	b := float64(a)/maxChannel*8 - 3
	return 0.5 + b/(1+math.Abs(b)*1.65)
}

func lerpChannel(a, b uint16, t float64) uint16 {
	v := float64(a)*(1-t) + float64(b)*t
	if v < 0 {
		v = 0
	}
	if v > maxChannel {
		v = maxChannel
	}
	return uint16(math.Round(v))
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
