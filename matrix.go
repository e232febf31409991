package gosketch

import "math"

// Matrix represents a 2D affine transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0,
		0, 1, 0,
	}
}

// Translate returns a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		1, 0, x,
		0, 1, y,
	}
}

// Scale returns a scaling matrix about the origin.
func Scale(x, y float64) Matrix {
	return Matrix{
		x, 0, 0,
		0, y, 0,
	}
}

// Rotate returns a rotation matrix about the origin. The angle is in
// radians; positive angles rotate clockwise on screen because the
// canvas y axis points down.
func Rotate(angle float64) Matrix {
	s := math.Sin(angle)
	c := math.Cos(angle)
	return Matrix{
		c, -s, 0,
		s, c, 0,
	}
}

// RotateAbout returns a rotation matrix about the given point.
func RotateAbout(angle float64, about Point) Matrix {
	return Translate(about.X, about.Y).
		Multiply(Rotate(angle)).
		Multiply(Translate(-about.X, -about.Y))
}

// Multiply returns the matrix product m * o, i.e. the transform that
// first applies o, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// TransformPoint applies the matrix to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the matrix to a vector, ignoring translation.
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part of the matrix.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse of the matrix. Singular matrices (tiny
// determinant) return the identity.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if math.Abs(det) < 1e-10 {
		return Identity()
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether the matrix is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// ScaleFactors returns the horizontal and vertical scale magnitudes of
// the matrix.
func (m Matrix) ScaleFactors() (sx, sy float64) {
	sx = math.Hypot(m.A, m.D)
	sy = math.Hypot(m.B, m.E)
	return sx, sy
}

// AverageScale returns the mean of the scale magnitudes, used to scale
// stroke widths and dash lengths under a transform.
func (m Matrix) AverageScale() float64 {
	sx, sy := m.ScaleFactors()
	return 0.5 * (sx + sy)
}
