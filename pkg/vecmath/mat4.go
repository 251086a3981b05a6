package vecmath

// Mat4 is a row-major 4x4 matrix used for the compiled world transform
// (rotation plus translation) of an Actor or Camera.
type Mat4 struct {
	M [4][4]float64
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

// NewWorldMatrix builds a world matrix from a rotation and a translation:
// world = T * R, so points are rotated about the origin then translated.
func NewWorldMatrix(rotation Mat3, position Vec3) Mat4 {
	m := Identity4()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.M[i][j] = rotation.M[i][j]
		}
	}
	m.M[0][3] = position.X
	m.M[1][3] = position.Y
	m.M[2][3] = position.Z
	return m
}

// MulPoint transforms a point by the full affine matrix (applies rotation
// and translation).
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z + m.M[0][3],
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z + m.M[1][3],
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z + m.M[2][3],
	}
}

// MulDirection transforms a direction by the rotation portion only (no
// translation).
func (m Mat4) MulDirection(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}
