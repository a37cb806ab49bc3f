package math3d

// QuatToMat4 builds a rotation matrix from a unit quaternion (x, y, z, w).
// The caller is responsible for passing a normalized quaternion; a
// non-unit input produces a combined rotate+scale matrix.
func QuatToMat4(x, y, z, w float64) Mat4 {
	x2, y2, z2 := x+x, y+y, z+z
	xx, yy, zz := x*x2, y*y2, z*z2
	xy, xz, yz := x*y2, x*z2, y*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}
