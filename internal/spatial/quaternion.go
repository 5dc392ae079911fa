// internal/spatial/quaternion.go
package spatial

import "math"

// Quat is a unit quaternion in (w, x, y, z) order, the convention used by
// MJCF "quat" attributes.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat returns the identity rotation.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// Mul returns the Hamilton product q*other, i.e. the rotation other followed
// by q when rotating column vectors.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

// Normalize returns q scaled to unit length. A degenerate quaternion
// normalizes to the identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n < 1e-12 {
		return IdentityQuat()
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Rotate applies the rotation q to the vector v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*u x (u x v + w*v), with u the vector part of q.
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Add(v.Scale(q.W)).Scale(2)
	return v.Add(u.Cross(t))
}

// AxisAngle returns the quaternion rotating by angle radians about axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	half := angle / 2
	s := math.Sin(half)
	a := axis.Normalize()
	return Quat{W: math.Cos(half), X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// EulerXYZ converts extrinsic x-y-z Euler angles (radians) to a quaternion.
// This matches the MJCF compiler default eulerseq="xyz", where each rotation
// is taken about the fixed parent-frame axes in order.
func EulerXYZ(x, y, z float64) Quat {
	qx := AxisAngle(Vec3{X: 1}, x)
	qy := AxisAngle(Vec3{Y: 1}, y)
	qz := AxisAngle(Vec3{Z: 1}, z)
	return qz.Mul(qy).Mul(qx)
}
