package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Frame is an oriented basis. View is always derived as Right × Up so every
// frame built through NewFrame has the same handedness.
type Frame struct {
	Right Vec3 `json:"right"`
	Up    Vec3 `json:"up"`
	View  Vec3 `json:"view"`
}

// NewFrame builds a frame from a right and an up direction. The result is
// only meaningful when Valid reports true.
func NewFrame(right, up Vec3) Frame {
	return Frame{
		Right: right,
		Up:    up,
		View:  right.Cross(up).Normalize(),
	}
}

// Valid reports whether Right and Up are non-parallel and non-zero.
func (f Frame) Valid() bool {
	return f.Right.Cross(f.Up).Len() > Epsilon
}

// Orthonormal reports whether the three axes are mutually orthogonal unit
// vectors and View matches Right × Up.
func (f Frame) Orthonormal() bool {
	const tol = 1e-9
	r, u, v := f.Right.gl(), f.Up.gl(), f.View.gl()
	if math.Abs(r.Dot(u)) > tol || math.Abs(r.Dot(v)) > tol || math.Abs(u.Dot(v)) > tol {
		return false
	}
	for _, axis := range []mgl64.Vec3{r, u, v} {
		if !mgl64.FloatEqualThreshold(axis.Len(), 1, tol) {
			return false
		}
	}
	return r.Cross(u).Sub(v).Len() <= tol
}

// ToWorld maps a point expressed in frame-local coordinates around origin to
// world coordinates.
func (f Frame) ToWorld(origin, local Vec3) Vec3 {
	return origin.
		Add(f.Right.Scale(local.X)).
		Add(f.Up.Scale(local.Y)).
		Add(f.View.Scale(local.Z))
}
