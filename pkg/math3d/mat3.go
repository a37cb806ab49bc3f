package math3d

import (
	"fmt"
	"math"
)

// Mat3 is a 3x3 matrix stored in row-major order: m[row*3+col].
// It carries the linear (rotation/scale) part of a transform, used for
// transforming normals independently of translation.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// FromMat4Upper extracts the upper-left 3x3 linear part of a Mat4.
func FromMat4Upper(m Mat4) Mat3 {
	return Mat3{
		m.Get(0, 0), m.Get(0, 1), m.Get(0, 2),
		m.Get(1, 0), m.Get(1, 1), m.Get(1, 2),
		m.Get(2, 0), m.Get(2, 1), m.Get(2, 2),
	}
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row*3+col]
}

// Mul3 multiplies two 3x3 matrices: a * b.
func (a Mat3) Mul3(b Mat3) Mat3 {
	var m Mat3
	for row := range 3 {
		for col := range 3 {
			var sum float64
			for k := range 3 {
				sum += a.Get(row, k) * b.Get(k, col)
			}
			m[row*3+col] = sum
		}
	}
	return m
}

// MulVec3 transforms a Vec3 through the linear map.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transpose3 returns the transposed matrix.
func (m Mat3) Transpose3() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant3 returns the determinant of the matrix.
func (m Mat3) Determinant3() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse3 returns the inverse of the matrix, or an error if it is
// singular (determinant within 1e-9 of zero).
func (m Mat3) Inverse3() (Mat3, error) {
	det := m.Determinant3()
	if math.Abs(det) < 1e-9 {
		return Mat3{}, fmt.Errorf("math3d: 3x3 matrix is singular (det=%v)", det)
	}
	invDet := 1.0 / det

	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) * invDet,
		(m[2]*m[7] - m[1]*m[8]) * invDet,
		(m[1]*m[5] - m[2]*m[4]) * invDet,

		(m[5]*m[6] - m[3]*m[8]) * invDet,
		(m[0]*m[8] - m[2]*m[6]) * invDet,
		(m[2]*m[3] - m[0]*m[5]) * invDet,

		(m[3]*m[7] - m[4]*m[6]) * invDet,
		(m[1]*m[6] - m[0]*m[7]) * invDet,
		(m[0]*m[4] - m[1]*m[3]) * invDet,
	}, nil
}

// InverseTranspose3 returns the inverse-transpose of the linear part of
// a transform, the correct matrix for transforming normals under
// non-uniform scale. Returns an error if the matrix is singular.
func InverseTranspose3(m Mat3) (Mat3, error) {
	inv, err := m.Inverse3()
	if err != nil {
		return Mat3{}, err
	}
	return inv.Transpose3(), nil
}
