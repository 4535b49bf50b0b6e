// Package brush implements the brush mapping and dynamics layers (§4.I,
// §4.J): piecewise-linear setting curves, the per-stroke state machine
// that turns pointer events into dabs, the color/smudge mixer, and the
// JSON brush-settings file format (§6).
package brush

import "sort"

// point is one (x, y) control point of a Mapping.
type point struct{ X, Y float64 }

// Mapping is a finite, x-ordered sequence of control points defining a
// piecewise-linear function from one input to one setting's
// contribution (§4.I). The zero value has no points and evaluates to 0
// everywhere.
type Mapping struct {
	points []point
}

// HasPoints reports whether m has any control points at all, the fast
// path Settings.Evaluate uses to skip an empty mapping instead of
// searching it.
func (m *Mapping) HasPoints() bool {
	return m != nil && len(m.points) > 0
}

// SetPoints replaces m's control points. pts need not arrive sorted by
// x; SetPoints sorts them. Points sharing an x value keep encounter
// order, matching their insertion order in the JSON point-list format.
func (m *Mapping) SetPoints(pts [][2]float64) {
	m.points = m.points[:0]
	for _, p := range pts {
		m.points = append(m.points, point{X: p[0], Y: p[1]})
	}
	sort.SliceStable(m.points, func(i, j int) bool { return m.points[i].X < m.points[j].X })
}

// Points returns a copy of m's control points as (x, y) pairs.
func (m *Mapping) Points() [][2]float64 {
	out := make([][2]float64, len(m.points))
	for i, p := range m.points {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// Eval returns y at x=input: 0 for an empty mapping, otherwise a linear
// interpolation between the bracketing control points, clamped to the
// outermost point's y beyond the domain.
func (m *Mapping) Eval(input float64) float64 {
	n := len(m.points)
	if n == 0 {
		return 0
	}
	if input <= m.points[0].X {
		return m.points[0].Y
	}
	if input >= m.points[n-1].X {
		return m.points[n-1].Y
	}

	// Binary search for the first point with X > input; the bracket is
	// (i-1, i).
	i := sort.Search(n, func(i int) bool { return m.points[i].X > input })
	lo, hi := m.points[i-1], m.points[i]
	if hi.X == lo.X {
		return lo.Y
	}
	t := (input - lo.X) / (hi.X - lo.X)
	return lo.Y + t*(hi.Y-lo.Y)
}
