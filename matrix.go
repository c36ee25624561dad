package stage

import "math"

// Matrix is a 2D affine transformation stored as the top two rows of a 3x3
// matrix:
//
//	| a  b  c |
//	| d  e  f |
//
// so that
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// The zero value is not the identity; use Identity.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translation returns a pure translation.
func Translation(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scaling returns a pure scale.
func Scaling(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotation returns a rotation by angle radians (clockwise in screen space,
// where y grows downwards).
func Rotation(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m * other: other is applied first, then m.
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

// Translate returns m followed by a local translation, the way a canvas
// context composes transforms.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Multiply(Translation(x, y))
}

// Scale returns m followed by a local scale.
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Multiply(Scaling(x, y))
}

// Rotate returns m followed by a local rotation.
func (m Matrix) Rotate(angle float64) Matrix {
	return m.Multiply(Rotation(angle))
}

// Apply transforms a point.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyVector transforms a direction, ignoring translation.
func (m Matrix) ApplyVector(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse transformation.
// A singular matrix yields the identity.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if math.Abs(det) < 1e-10 {
		return Identity()
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// Approx reports whether all coefficients are within epsilon.
func (m Matrix) Approx(o Matrix, epsilon float64) bool {
	return math.Abs(m.A-o.A) < epsilon && math.Abs(m.B-o.B) < epsilon &&
		math.Abs(m.C-o.C) < epsilon && math.Abs(m.D-o.D) < epsilon &&
		math.Abs(m.E-o.E) < epsilon && math.Abs(m.F-o.F) < epsilon
}
