package paintcore

// RGBA is a straight (non-premultiplied) color with each component in
// [0, 1]. It is the representation used at every boundary where a color
// crosses into or out of tile-space: get_color's result, a brush's
// mixed dab color before DrawDab scales it into tile channels, and a
// smudge bucket's stored sample all deal in RGBA rather than raw
// per-channel floats or premultiplied ints (§6).
type RGBA struct {
	R, G, B, A float64
}

// Clamp restricts every component to [0, 1]. Mixing and mapping curves
// can overshoot the unit range before a color reaches a boundary that
// requires it.
func (c RGBA) Clamp() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Channels converts c to the premultiplied-channel representation
// DabParams carries, clamping first and scaling by maxChannel (normally
// tile.MaxChannel).
func (c RGBA) Channels(maxChannel uint16) (r, g, b, a uint16) {
	c = c.Clamp()
	scale := float64(maxChannel)
	return uint16(c.R * scale), uint16(c.G * scale), uint16(c.B * scale), uint16(c.A * scale)
}

// Sentinel is the (0, 1, 0, 0) value get_color returns when nothing was
// accumulated under its mask, deliberately distinguishable from any
// legitimate color.
var Sentinel = RGBA{R: 0, G: 1, B: 0, A: 0}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
