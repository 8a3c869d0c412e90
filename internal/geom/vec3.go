// Package geom provides the 3-vector arithmetic shared by the surface
// generator: addition, scaling, dot/cross products, and the distance
// measures the geometric constructions are built on.
//
// PHYSICIST: Plain Euclidean R^3 vectors, no units baked in (callers work in
// Angstroms throughout).
package geom

import "math"

// Vec3 is a 3D vector or point in Angstrom space.
type Vec3 struct {
	X, Y, Z float64
}

// Zero is the origin / zero vector.
var Zero = Vec3{}

// New builds a Vec3 from components.
func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v multiplied by a scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot computes the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross computes the cross product v x other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// MagnitudeSquared returns |v|^2.
func (v Vec3) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Magnitude returns |v|.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.MagnitudeSquared())
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector if v is (numerically) zero-length.
func (v Vec3) Normalize() Vec3 {
	mag := v.Magnitude()
	if mag < 1e-12 {
		return Zero
	}
	return v.Scale(1.0 / mag)
}

// DistanceSquared returns |v - other|^2.
func (v Vec3) DistanceSquared(other Vec3) float64 {
	return v.Sub(other).MagnitudeSquared()
}

// Distance returns |v - other|.
func (v Vec3) Distance(other Vec3) float64 {
	return math.Sqrt(v.DistanceSquared(other))
}
