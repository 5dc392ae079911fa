// internal/spatial/vector.go
package spatial

import "math"

// Vec3 represents a point or displacement in 3D space, in meters.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the vector sum of v and other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns the vector difference of v and other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns the vector v multiplied by the scalar factor.
func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Dot returns the dot product of v and other.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of v and other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean length of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Dist returns the Euclidean distance between v and other (treated as points).
func (v Vec3) Dist(other Vec3) float64 {
	return v.Sub(other).Norm()
}

// Normalize returns a unit vector in the same direction as v.
// The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1.0 / n)
}
