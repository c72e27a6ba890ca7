package math

// Coords is a coordinate frame: an origin plus three basis axes, all
// expressed in the parent space. A rigid frame has orthonormal axes; a frame
// may also carry uniformly scaled axes after a bone scale override.
type Coords struct {
	Origin Vec3
	Axis   [3]Vec3
}

// IdentityCoords returns the frame of the parent space itself.
func IdentityCoords() Coords {
	return Coords{
		Axis: [3]Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	}
}

// CoordsFromQuat builds a frame located at origin and oriented by q.
func CoordsFromQuat(origin Vec3, q Quat) Coords {
	return Coords{Origin: origin, Axis: q.ToAxes()}
}

// TransformVector projects a parent-space direction onto the frame axes.
func (c Coords) TransformVector(v Vec3) Vec3 {
	return Vec3{v.Dot(c.Axis[0]), v.Dot(c.Axis[1]), v.Dot(c.Axis[2])}
}

// UnTransformVector maps a local direction to parent space.
func (c Coords) UnTransformVector(v Vec3) Vec3 {
	return c.Axis[0].Scale(v.X).MulAdd(c.Axis[1], v.Y).MulAdd(c.Axis[2], v.Z)
}

// TransformPoint maps a parent-space point into the frame's local space.
func (c Coords) TransformPoint(p Vec3) Vec3 {
	return c.TransformVector(p.Sub(c.Origin))
}

// UnTransformPoint maps a local point to parent space.
func (c Coords) UnTransformPoint(p Vec3) Vec3 {
	return c.Origin.Add(c.UnTransformVector(p))
}

// UnTransformCoords interprets src as a frame local to c and returns it in
// c's parent space. For a parent bone frame and a child's local frame this
// yields the child's world frame.
func (c Coords) UnTransformCoords(src Coords) Coords {
	return Coords{
		Origin: c.UnTransformPoint(src.Origin),
		Axis: [3]Vec3{
			c.UnTransformVector(src.Axis[0]),
			c.UnTransformVector(src.Axis[1]),
			c.UnTransformVector(src.Axis[2]),
		},
	}
}

// TransformCoords is the inverse of UnTransformCoords for orthonormal c.
func (c Coords) TransformCoords(src Coords) Coords {
	return Coords{
		Origin: c.TransformPoint(src.Origin),
		Axis: [3]Vec3{
			c.TransformVector(src.Axis[0]),
			c.TransformVector(src.Axis[1]),
			c.TransformVector(src.Axis[2]),
		},
	}
}

// TransformCoordsSlow is TransformCoords for frames whose axes are not
// orthonormal (scaled or sheared). It inverts the full 3x3 basis.
// A degenerate basis leaves src unchanged.
func (c Coords) TransformCoordsSlow(src Coords) Coords {
	a0, a1, a2 := c.Axis[0], c.Axis[1], c.Axis[2]
	r0 := a1.Cross(a2)
	r1 := a2.Cross(a0)
	r2 := a0.Cross(a1)
	det := a0.Dot(r0)
	if det == 0 {
		return src
	}
	inv := 1 / det
	solve := func(v Vec3) Vec3 {
		return Vec3{r0.Dot(v) * inv, r1.Dot(v) * inv, r2.Dot(v) * inv}
	}
	return Coords{
		Origin: solve(src.Origin.Sub(c.Origin)),
		Axis: [3]Vec3{
			solve(src.Axis[0]),
			solve(src.Axis[1]),
			solve(src.Axis[2]),
		},
	}
}

// Invert returns the inverse of a rigid frame: for any p,
// c.Invert().UnTransformPoint(p) == c.TransformPoint(p).
func (c Coords) Invert() Coords {
	var d Coords
	for i := 0; i < 3; i++ {
		d.Axis[i] = Vec3{c.Axis[0].component(i), c.Axis[1].component(i), c.Axis[2].component(i)}
	}
	d.Origin = Vec3{
		-c.Origin.Dot(c.Axis[0]),
		-c.Origin.Dot(c.Axis[1]),
		-c.Origin.Dot(c.Axis[2]),
	}
	return d
}

// Scale multiplies the three axes by s in place. The origin is untouched.
func (c *Coords) Scale(s float32) {
	c.Axis[0] = c.Axis[0].Scale(s)
	c.Axis[1] = c.Axis[1].Scale(s)
	c.Axis[2] = c.Axis[2].Scale(s)
}

// ToMat4 returns the column-major matrix equivalent of UnTransformPoint.
func (c Coords) ToMat4() Mat4 {
	return Mat4{
		c.Axis[0].X, c.Axis[0].Y, c.Axis[0].Z, 0,
		c.Axis[1].X, c.Axis[1].Y, c.Axis[1].Z, 0,
		c.Axis[2].X, c.Axis[2].Y, c.Axis[2].Z, 0,
		c.Origin.X, c.Origin.Y, c.Origin.Z, 1,
	}
}

func (v Vec3) component(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
