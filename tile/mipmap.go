package tile

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// downsample fills dst with a level-N mip of src: a box of side
// Size>>level, bilinearly downscaled from the full tile and placed at
// dst's origin, the rest of dst left fully transparent. level must be >=
// 1 (level 0 is the tile itself, never materialized through here).
//
// This mirrors the pack's gamma-correct tiled box-downscale shape (the
// same "pool a scratch buffer, downscale tile-by-tile" structure used
// elsewhere for mip generation) but drives it through x/image/draw's
// BiLinear scaler instead of a hand-rolled box filter, since our tiles
// are already premultiplied 16-bit, the exact shape image.RGBA64 models.
func downsample(src, dst *Tile, level int) {
	side := Size >> uint(level)
	if side < 1 {
		side = 1
	}

	srcImg := toRGBA64(src)
	dstImg := image.NewRGBA64(image.Rect(0, 0, side, side))

	xdraw.BiLinear.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	dst.Reset()
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			c := dstImg.RGBA64At(x, y)
			dst.Set(x, y, c.R, c.G, c.B, c.A)
		}
	}
}

// toRGBA64 views a Tile's premultiplied 16-bit pixels as an
// image.RGBA64 (itself alpha-premultiplied 16-bit), for use with
// x/image/draw scalers. The spec's channel range [0, 2^15] is half of
// image.RGBA64's [0, 2^16), which costs no precision since we never
// store a value outside our own range.
func toRGBA64(t *Tile) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, Size, Size))
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			r, g, b, a := t.At(x, y)
			img.SetRGBA64(x, y, color.RGBA64{R: r, G: g, B: b, A: a})
		}
	}
	return img
}
