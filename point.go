package paintcore

// Point is a 2D coordinate or direction vector. It exists so Matrix's
// transform methods have a concrete type to take and return: surface
// passes a dab's position through TransformPoint and a dab's facing
// direction through TransformVector when fanning a draw_dab call out
// across symmetry clones.
type Point struct {
	X, Y float64
}

// Pt constructs a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}
