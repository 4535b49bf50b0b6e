package paintcore

import "math"

// Matrix is the 2x3 affine transform symmetry.Matrices composes to build
// each mirror/rotational clone: translate to the symmetry center, reflect
// or rotate, then translate back. The implicit third row is always
// (0, 0, 1), so a full 3x3 homogeneous transform is carried in six
// floats.
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Translate creates a translation matrix, used to move a clone's pivot
// to and from the symmetry center.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, B: 0, C: x, D: 0, E: 1, F: y}
}

// Rotate creates a rotation matrix (angle in radians), one per step of a
// Rotational or Snowflake symmetry's clones.
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{A: cos, B: -sin, C: 0, D: sin, E: cos, F: 0}
}

// Multiply composes m and other so that applying the result to a point
// is equivalent to applying other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the full transformation, including translation,
// to a dab position.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// TransformVector applies only the transformation's linear part (no
// translation), used to reorient an elliptical dab's angle under a clone
// without moving it.
func (m Matrix) TransformVector(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y, Y: m.D*p.X + m.E*p.Y}
}
