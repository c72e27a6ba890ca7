package math

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// Rendering collaborators receive bone frames in this form via Coords.ToMat4.
type Mat4 [16]float32

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// Coords extracts the frame encoded by an affine matrix.
// The projective row is ignored.
func (m Mat4) Coords() Coords {
	return Coords{
		Origin: Vec3{m[12], m[13], m[14]},
		Axis: [3]Vec3{
			{m[0], m[1], m[2]},
			{m[4], m[5], m[6]},
			{m[8], m[9], m[10]},
		},
	}
}
