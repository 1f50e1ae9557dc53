// Package geom provides the small set of 3D primitives used to derive
// section boxes: vectors, axis-aligned bounding boxes and orthonormal frames.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used for parallelism and orthogonality checks.
const Epsilon = 1e-9

// Vec3 is a 3D point or direction in model units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// World axes.
var (
	BasisX = Vec3{X: 1}
	BasisY = Vec3{Y: 1}
	BasisZ = Vec3{Z: 1}
)

func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// gl and fromGL convert to and from the mathgl vector the arithmetic is
// delegated to.
func (v Vec3) gl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromGL(g mgl64.Vec3) Vec3 {
	return Vec3{X: g[0], Y: g[1], Z: g[2]}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return fromGL(a.gl().Add(b.gl()))
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return fromGL(a.gl().Sub(b.gl()))
}

func (v Vec3) Scale(s float64) Vec3 {
	return fromGL(v.gl().Mul(s))
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.gl().Dot(b.gl())
}

// Cross returns a × b (right-handed).
func (a Vec3) Cross(b Vec3) Vec3 {
	return fromGL(a.gl().Cross(b.gl()))
}

func (v Vec3) Len() float64 {
	return v.gl().Len()
}

// Normalize returns v scaled to unit length, or the zero vector when v is
// (numerically) zero. mgl64 would return NaNs for the zero vector.
func (v Vec3) Normalize() Vec3 {
	if v.Len() < Epsilon {
		return Vec3{}
	}
	return fromGL(v.gl().Normalize())
}

// Min returns the component-wise minimum of a and b.
func Min(a, b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func Max(a, b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// LessEq reports whether every component of v is <= the matching component of b.
func (v Vec3) LessEq(b Vec3) bool {
	return v.X <= b.X && v.Y <= b.Y && v.Z <= b.Z
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
