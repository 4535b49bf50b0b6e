// Package getcolor implements the get_color sampling accumulator: running
// weighted sums of a tile's color under an elliptical mask, folded across
// tiles either as a plain weighted sum (legacy mode) or as a running
// two-color mix in both straight-RGB and spectral-reflectance space
// (sampled mode).
package getcolor

import (
	"math"

	"github.com/inkwell/paintcore"
	"github.com/inkwell/paintcore/colormath"
	"github.com/inkwell/paintcore/mask"
	"github.com/inkwell/paintcore/tile"
)

const maxChannel = tile.MaxChannel

// Sums carries the running accumulator state across every tile a
// get_color query touches. Weight and A are always a running sum. In
// legacy mode (paint < 0) R, G, B are a running premultiplied sum; in
// sampled mode they are a running average that each call folds another
// tile's colors into via a weighted mix rather than summing outright.
type Sums struct {
	Weight float64
	R, G, B float64
	A float64
}

// Source is the uniform [0,1) draw Accumulate needs to decide whether an
// off-interval pixel is sampled. *rand.Rand from math/rand/v2 satisfies
// this.
type Source interface {
	Float64() float64
}

// SampleRate returns the sample_interval and random sample probability a
// caller should use for a dab of radius r, keeping the expected sample
// count bounded linearly in r.
func SampleRate(r float64) (interval int, probability float64) {
	if r > 2 {
		interval = int(math.Floor(7 * r))
		if interval < 1 {
			interval = 1
		}
	} else {
		interval = 1
	}
	if r <= 0 {
		return interval, 1
	}
	return interval, clamp01(1 / (7 * r))
}

// AccumulateLegacy sums opa*channel over every masked pixel with integer
// accumulators, mirroring the fact that a single tile's weighted sum
// always fits in a 32-bit integer even though the running total across
// many tiles needs float64.
func AccumulateLegacy(sums *Sums, mk *mask.Mask, t *tile.Tile) {
	var weight, r, g, b, a uint32
	idx := 0
	for run := range mk.Runs() {
		if run.Skip > 0 {
			idx += run.Skip
			continue
		}
		opa := uint32(run.Opacity)
		off := idx * 4
		weight += opa
		r += opa * uint32(t.Pix[off]) / maxChannel
		g += opa * uint32(t.Pix[off+1]) / maxChannel
		b += opa * uint32(t.Pix[off+2]) / maxChannel
		a += opa * uint32(t.Pix[off+3]) / maxChannel
		idx++
	}
	sums.Weight += float64(weight)
	sums.R += float64(r)
	sums.G += float64(g)
	sums.B += float64(b)
	sums.A += float64(a)
}

// Accumulate folds one tile's masked pixels into sums. When paint < 0 it
// defers to AccumulateLegacy. Otherwise it samples every sampleInterval-th
// pixel plus a rng-selected subset of the rest, blending each sampled
// pixel into a running straight-RGB average and, for paint > 0, a running
// 10-band spectral-reflectance average, then writes the paint-weighted
// convex combination of the two back into sums.R/G/B.
func Accumulate(sums *Sums, mk *mask.Mask, t *tile.Tile, paint float64, sampleInterval int, randomSampleRate float64, rng Source) {
	if paint < 0 {
		AccumulateLegacy(sums, mk, t)
		return
	}
	if sampleInterval < 1 {
		sampleInterval = 1
	}

	var avgSpectral [colormath.SpectralBands]float64
	avgRGB := [3]float64{sums.R, sums.G, sums.B}
	if paint > 0 {
		avgSpectral = colormath.RGBToSpectral(sums.R, sums.G, sums.B)
	}

	intervalCounter := 0
	idx := 0
	for run := range mk.Runs() {
		if run.Skip > 0 {
			idx += run.Skip
			continue
		}
		m := run.Opacity
		off := idx * 4
		if intervalCounter == 0 || rng.Float64() < randomSampleRate {
			da := t.Pix[off+3]

			a := float64(m) * float64(da) / (maxChannel * maxChannel)
			alphaSums := a + sums.A
			sums.Weight += float64(m) / maxChannel

			facA, facB := 1.0, 0.0
			if alphaSums > 0 {
				facA = a / alphaSums
				facB = 1 - facA
			}

			if paint > 0 && da > 0 {
				daF := float64(da)
				dr := float64(t.Pix[off]) / daF
				dg := float64(t.Pix[off+1]) / daF
				db := float64(t.Pix[off+2]) / daF
				spectral := colormath.RGBToSpectral(dr, dg, db)
				for i := range avgSpectral {
					avgSpectral[i] = math.Pow(spectral[i], facA) * math.Pow(avgSpectral[i], facB)
				}
			}
			if paint < 1 && da > 0 {
				daF := float64(da)
				avgRGB[0] = float64(t.Pix[off])*facA/daF + avgRGB[0]*facB
				avgRGB[1] = float64(t.Pix[off+1])*facA/daF + avgRGB[1]*facB
				avgRGB[2] = float64(t.Pix[off+2])*facA/daF + avgRGB[2]*facB
			}

			sums.A += a
		}
		intervalCounter = (intervalCounter + 1) % sampleInterval
		idx++
	}

	specR, specG, specB := colormath.SpectralToRGB(avgSpectral)
	sums.R = specR*paint + (1-paint)*avgRGB[0]
	sums.G = specG*paint + (1-paint)*avgRGB[1]
	sums.B = specB*paint + (1-paint)*avgRGB[2]
}

// Finish divides the accumulated alpha by the total sample weight and
// demultiplies the color channels, producing the final straight-color
// result of a get_color query as a paintcore.RGBA. It returns
// paintcore.Sentinel when nothing was accumulated under the mask.
func (s Sums) Finish(paint float64) paintcore.RGBA {
	if s.Weight <= 0 {
		return paintcore.Sentinel
	}
	a := clamp01(s.A / s.Weight)
	if a <= 0 {
		return paintcore.Sentinel
	}
	demul := 1.0
	if paint < 0 {
		demul = a * s.Weight
	}
	return paintcore.RGBA{R: clamp01(s.R / demul), G: clamp01(s.G / demul), B: clamp01(s.B / demul), A: a}
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
