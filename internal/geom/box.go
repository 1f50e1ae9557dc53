package geom

// BoundingBox3 is an axis-aligned box. A valid box has Min <= Max on every axis.
type BoundingBox3 struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// NewBoundingBox returns the box spanning a and b regardless of corner order.
func NewBoundingBox(a, b Vec3) BoundingBox3 {
	return BoundingBox3{Min: Min(a, b), Max: Max(a, b)}
}

// Valid reports whether both corners are finite and ordered.
func (b BoundingBox3) Valid() bool {
	return b.Min.IsFinite() && b.Max.IsFinite() && b.Min.LessEq(b.Max)
}

// Center returns the midpoint of the box.
func (b BoundingBox3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis extents.
func (b BoundingBox3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b BoundingBox3) Contains(p Vec3) bool {
	return b.Min.LessEq(p) && p.LessEq(b.Max)
}
