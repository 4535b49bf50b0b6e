// Package mask rasterizes elliptical dabs into run-length-encoded opacity
// masks and iterates them during blending.
package mask

import (
	"iter"
	"math"

	"github.com/inkwell/paintcore/tile"
)

// MaxWords is the worst-case word capacity of a mask covering a full tile:
// one opacity word per pixel plus one (zero, skip) pair per run boundary.
const MaxWords = tile.Size*tile.Size + 2*tile.Size

// Mask holds the RLE-encoded opacity stream for a single dab clipped to a
// tile. Non-zero words are pixel opacities in [0, 2^15]; a zero word is
// followed by a skip count (in units of 4, matching the 4-word-per-pixel
// RGBA stride); two consecutive zero words terminate the stream.
type Mask struct {
	words []uint16
}

// New returns an empty Mask with its backing store preallocated to
// MaxWords, so Rasterize never reallocates.
func New() *Mask {
	return &Mask{words: make([]uint16, 0, MaxWords)}
}

// Reset clears the mask for reuse.
func (m *Mask) Reset() { m.words = m.words[:0] }

// Words returns the raw RLE word stream.
func (m *Mask) Words() []uint16 { return m.words }

// Run is one decoded step of the mask stream: either a single opaque pixel
// or a run of skipped (fully transparent) pixels.
type Run struct {
	Opacity uint16 // non-zero opacity for one pixel; zero when this is a skip
	Skip    int    // pixel count to advance when Opacity is zero
}

// Runs returns a forward iterator over the mask's (opacity, skip) pairs,
// stopping at the terminator without exposing it to the caller.
func (m *Mask) Runs() iter.Seq[Run] {
	words := m.words
	return func(yield func(Run) bool) {
		i := 0
		for i < len(words) {
			w := words[i]
			if w != 0 {
				if !yield(Run{Opacity: w}) {
					return
				}
				i++
				continue
			}
			if i+1 >= len(words) {
				return
			}
			skipWord := words[i+1]
			if skipWord == 0 {
				return
			}
			if !yield(Run{Skip: int(skipWord / 4)}) {
				return
			}
			i += 2
		}
	}
}

// Rasterize writes the RLE opacity mask for shape into dst, scanning the
// full T*T tile in row-major order so every pixel is accounted for as
// either an emitted opacity or a skipped pixel.
func Rasterize(dst *Mask, shape DabShape) {
	dst.Reset()

	r := shape.Radius
	if r <= 0 {
		dst.words = append(dst.words, 0, uint16(tile.Pixels*4), 0, 0)
		return
	}
	angleRad := shape.AngleDegrees * math.Pi / 180
	aspect := shape.AspectRatio
	h := shape.Hardness
	small := r < 3

	minX := int(math.Floor(shape.CenterX - r - 1))
	maxX := int(math.Floor(shape.CenterX + r + 1))
	minY := int(math.Floor(shape.CenterY - r - 1))
	maxY := int(math.Floor(shape.CenterY + r + 1))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > tile.Size-1 {
		maxX = tile.Size - 1
	}
	if maxY > tile.Size-1 {
		maxY = tile.Size - 1
	}

	skip := 0
	flushSkip := func() {
		if skip > 0 {
			dst.words = append(dst.words, 0, uint16(skip*4))
			skip = 0
		}
	}

	for yp := 0; yp < tile.Size; yp++ {
		inRowRange := yp >= minY && yp <= maxY
		for xp := 0; xp < tile.Size; xp++ {
			if !inRowRange || xp < minX || xp > maxX {
				skip++
				continue
			}
			dx := float64(xp) + 0.5 - shape.CenterX
			dy := float64(yp) + 0.5 - shape.CenterY

			var opa float64
			if small {
				opa = aaOpacity(dx, dy, angleRad, aspect, r, h)
			} else {
				xr, yr := rotateScale(dx, dy, angleRad, aspect)
				rr := (xr*xr + yr*yr) / (r * r)
				opa = opacityProfile(rr, h)
			}

			word := uint16(math.Round(clampUnit(opa) * tile.MaxChannel))
			if word == 0 {
				skip++
				continue
			}
			flushSkip()
			dst.words = append(dst.words, word)
		}
	}
	flushSkip()
	dst.words = append(dst.words, 0, 0)
}
