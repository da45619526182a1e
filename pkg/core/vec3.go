// Package core provides the vector algebra, ray, and deterministic
// sampling primitives shared by every other package in the renderer.
package core

import "math"

// Infinity is the upper tMax bound used for primary and scattered rays
// that have no a priori closest-hit limit.
var Infinity = math.Inf(1)

// Vec3 is a 3-component vector used for points, directions, and linear
// RGB color throughout the renderer.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a 2-component vector, used for texture coordinates and
// lens/pixel jitter samples.
type Vec2 struct {
	X, Y float64
}

// Coord is an integer pixel coordinate.
type Coord struct {
	X, Y int
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }
func NewVec2(x, y float64) Vec2    { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Subtract(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Multiply(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Subtract(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Multiply(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) MultiplyVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Negate() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float64 { return v.Dot(v) }
func (v Vec3) Length() float64        { return math.Sqrt(v.LengthSquared()) }

// Normalize returns a unit vector in the same direction, or the zero
// vector for a zero-length input (callers treat that as a degenerate
// ray direction).
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Multiply(1 / l)
}

// Reflect computes I - 2(N·I)N, the mirror reflection of I about N.
func Reflect(i, n Vec3) Vec3 {
	return i.Subtract(n.Multiply(2 * i.Dot(n)))
}

func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// Midpoint returns the componentwise average of v and o.
func (v Vec3) Midpoint(o Vec3) Vec3 {
	return v.Add(o).Multiply(0.5)
}

func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: math.Max(lo, math.Min(hi, v.X)),
		Y: math.Max(lo, math.Min(hi, v.Y)),
		Z: math.Max(lo, math.Min(hi, v.Z)),
	}
}

func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// IsFinite reports whether every component is free of NaN/Inf, used to
// clamp degenerate BSDF samples to black.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Luminance returns the Rec. 709 perceptual luminance of a linear RGB color.
func (v Vec3) Luminance() float64 {
	return 0.2126*v.X + 0.7152*v.Y + 0.0722*v.Z
}

// OrthonormalBasis returns (tangent, bitangent) completing the unit
// normal n into a right-handed basis, using the PBRT construction that
// picks the axis of largest magnitude to avoid the degenerate case
// where n is close to a coordinate axis.
func (n Vec3) OrthonormalBasis() (t, b Vec3) {
	if math.Abs(n.X) > math.Abs(n.Y) {
		t = Vec3{-n.Z, 0, n.X}.Multiply(1 / math.Sqrt(n.X*n.X+n.Z*n.Z))
	} else {
		t = Vec3{0, n.Z, -n.Y}.Multiply(1 / math.Sqrt(n.Y*n.Y+n.Z*n.Z))
	}
	b = n.Cross(t)
	return t, b
}

// Ray is a parametric ray: point(t) = Origin + t*Direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Kind      RayKind
}

// RayKind classifies the role a ray plays in the integrator, used only
// for diagnostics; it has no effect on intersection or shading.
type RayKind int

const (
	RayIncident RayKind = iota
	RayShadow
	RayReflected
	RayRefracted
)

func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Kind: RayIncident}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
