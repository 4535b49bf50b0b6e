package colormath

// RYBToRGB converts a red/yellow/blue paint-wheel color (each in [0,1])
// to straight RGB by trilinear interpolation over Gossett & Chen's eight
// wheel corners.
func RYBToRGB(ry, yl, bl float64) (r, g, b float64) {
	// Corner order: (ry,yl,bl) = 000 white, 100 red, 010 yellow,
	// 110 orange, 001 blue, 101 purple, 011 green, 111 black.
	r = cubicInterp(ry, yl, bl,
		1, 1, 1, 1,
		0, 0.5, 0, 0,
	)
	g = cubicInterp(ry, yl, bl,
		1, 0, 1, 0.5,
		0, 0, 1, 0,
	)
	b = cubicInterp(ry, yl, bl,
		1, 0, 0, 0,
		1, 1, 0.5, 0,
	)
	return clampUnit(r), clampUnit(g), clampUnit(b)
}

// cubicInterp trilinearly interpolates the eight corner weights
// (c000, c100, c010, c110, c001, c101, c011, c111) across (ry, yl, bl).
func cubicInterp(ry, yl, bl, c000, c100, c010, c110, c001, c101, c011, c111 float64) float64 {
	c00 := c000*(1-ry) + c100*ry
	c10 := c010*(1-ry) + c110*ry
	c01 := c001*(1-ry) + c101*ry
	c11 := c011*(1-ry) + c111*ry

	c0 := c00*(1-yl) + c10*yl
	c1 := c01*(1-yl) + c11*yl

	return c0*(1-bl) + c1*bl
}

// RGBToRYB inverts RYBToRGB numerically: the nearest wheel coordinate is
// found by coordinate descent starting from the RYB midpoint
// (0.5, 0.5, 0.5), halving the step whenever no axis improves. This
// inverse exists mainly for round-trip testing.
func RGBToRYB(r, g, b float64) (ry, yl, bl float64) {
	ry, yl, bl = 0.5, 0.5, 0.5
	step := 0.25
	for range 20 {
		improved := false
		for _, axis := range [3]*float64{&ry, &yl, &bl} {
			best := *axis
			bestErr := ryberr(ry, yl, bl, r, g, b)
			for _, delta := range [2]float64{-step, step} {
				candidate := clampUnit(*axis + delta)
				orig := *axis
				*axis = candidate
				e := ryberr(ry, yl, bl, r, g, b)
				*axis = orig
				if e < bestErr {
					bestErr = e
					best = candidate
					improved = true
				}
			}
			*axis = best
		}
		if !improved {
			step /= 2
		}
	}
	return ry, yl, bl
}

func ryberr(ry, yl, bl, r, g, b float64) float64 {
	rr, gg, bb := RYBToRGB(ry, yl, bl)
	dr, dg, db := rr-r, gg-g, bb-b
	return dr*dr + dg*dg + db*db
}
