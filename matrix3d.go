package stage

import (
	"encoding/binary"

	"github.com/chewxy/math32"
)

// Matrix3D is a 4x4 float32 matrix in column-major order, the layout GPU
// uniform blocks expect. It is used for the projection uniform.
type Matrix3D [16]float32

// Identity3D returns the 4x4 identity.
func Identity3D() Matrix3D {
	return Matrix3D{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection mapping the box
// [left,right]x[bottom,top]x[near,far] to clip space.
//
// For a canvas of size w*h with the origin at the top-left, use
// Ortho(0, w, h, 0, -1, 1).
func Ortho(left, right, bottom, top, near, far float32) Matrix3D {
	var m Matrix3D
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -2 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -(far + near) / (far - near)
	m[15] = 1
	return m
}

// FromMatrix lifts a 2D affine transform into a 4x4 matrix.
func FromMatrix(a Matrix) Matrix3D {
	m := Identity3D()
	m[0], m[4], m[12] = float32(a.A), float32(a.B), float32(a.C)
	m[1], m[5], m[13] = float32(a.D), float32(a.E), float32(a.F)
	return m
}

// Multiply returns m * o.
func (m Matrix3D) Multiply(o Matrix3D) Matrix3D {
	var r Matrix3D
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Apply transforms the point (x, y, 0, 1) and returns the resulting x and y.
func (m Matrix3D) Apply(x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}

// Approx reports whether all elements are within epsilon.
func (m Matrix3D) Approx(o Matrix3D, epsilon float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > epsilon {
			return false
		}
	}
	return true
}

// Size returns the uniform size in bytes.
func (m Matrix3D) Size() int { return 64 }

// AppendBytes appends the little-endian encoding of m to dst.
func (m Matrix3D) AppendBytes(dst []byte) []byte {
	for _, f := range m {
		dst = binary.LittleEndian.AppendUint32(dst, math32.Float32bits(f))
	}
	return dst
}
