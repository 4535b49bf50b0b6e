package surface

import (
	"math"

	"github.com/inkwell/paintcore/blend"
	"github.com/inkwell/paintcore/mask"
	"github.com/inkwell/paintcore/queue"
	"github.com/inkwell/paintcore/tile"
)

// applyOp stamps one dab operation's mask into t, applying each active
// blend mode as its own pass weighted by the mode's own fraction, the
// dab's overall opaque, and (for Normal and LockAlpha) a paint-weighted
// split between the additive and spectral-pigment variants.
func applyOp(t *tile.Tile, m *mask.Mask, op queue.Dab) {
	src := [4]uint16{op.R, op.G, op.B, op.A}

	if op.Normal > 0 {
		applyNormal(t, m, src, op.Normal*op.Opaque, op.Paint)
	}
	if op.LockAlpha > 0 && op.A != 0 {
		weight := op.LockAlpha * op.Opaque * (1 - op.Colorize) * (1 - op.Posterize)
		if op.Paint < 1 {
			blend.Apply(t, m, blend.Get(blend.LockAlpha, blend.Additive), blend.Params{
				Src: src, Opacity: scaleOpacity(weight * (1 - op.Paint)),
			})
		}
		if op.Paint > 0 {
			blend.Apply(t, m, blend.Get(blend.LockAlpha, blend.Pigment), blend.Params{
				Src: src, Opacity: scaleOpacity(weight * op.Paint),
			})
		}
	}
	if op.Colorize > 0 {
		blend.Apply(t, m, blend.Get(blend.Color, blend.Additive), blend.Params{
			Src: src, Opacity: scaleOpacity(op.Colorize * op.Opaque),
		})
	}
	if op.Posterize > 0 {
		blend.Apply(t, m, blend.Get(blend.Posterize, blend.Additive), blend.Params{
			Opacity: scaleOpacity(op.Posterize * op.Opaque), PosterizeNum: op.PosterizeNum,
		})
	}
}

// applyNormal stamps the Normal pass. A dab whose source color carries
// full alpha (a fully loaded brush) composites straight in; a partially
// loaded one (smudging, watercolor-style brushes) first erases toward
// its own alpha and then paints the color in, approximating the combined
// paint-and-erase recipe a single dab with partial color_a produces.
// Each half of the pass is itself split additive/pigment by paint.
func applyNormal(t *tile.Tile, m *mask.Mask, src [4]uint16, weight, paint float64) {
	if paint < 1 {
		stampNormal(t, m, src, weight*(1-paint), blend.Additive)
	}
	if paint > 0 {
		stampNormal(t, m, src, weight*paint, blend.Pigment)
	}
}

func stampNormal(t *tile.Tile, m *mask.Mask, src [4]uint16, weight float64, variant blend.Variant) {
	if weight <= 0 {
		return
	}
	if src[3] >= tile.MaxChannel {
		blend.Apply(t, m, blend.Get(blend.Normal, variant), blend.Params{Src: src, Opacity: scaleOpacity(weight)})
		return
	}
	blend.Apply(t, m, blend.Get(blend.Eraser, variant), blend.Params{
		Opacity: scaleOpacity(weight), EraserAlpha: tile.MaxChannel - src[3],
	})
	blend.Apply(t, m, blend.Get(blend.Normal, variant), blend.Params{Src: src, Opacity: scaleOpacity(weight)})
}

func scaleOpacity(weight float64) uint16 {
	if weight < 0 {
		return 0
	}
	if weight > 1 {
		weight = 1
	}
	return uint16(math.Round(weight * tile.MaxChannel))
}
