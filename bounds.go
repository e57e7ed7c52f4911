package willow3d

import "github.com/go-gl/mathgl/mgl32"

// BoundingBox is an axis-aligned box in a node's local space.
// The zero value is the empty box.
type BoundingBox struct {
	Min, Max mgl32.Vec3
	valid    bool
}

// NewBoundingBox returns the smallest box containing every point.
// Returns the empty box for no points.
func NewBoundingBox(points ...mgl32.Vec3) BoundingBox {
	var b BoundingBox
	for _, p := range points {
		b = b.extend(p)
	}
	return b
}

// extend returns b grown to include p.
func (b BoundingBox) extend(p mgl32.Vec3) BoundingBox {
	if !b.valid {
		return BoundingBox{Min: p, Max: p, valid: true}
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b BoundingBox) IsEmpty() bool {
	return !b.valid
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() mgl32.Vec3 {
	if !b.valid {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Dimensions returns the extent of the box along each axis.
func (b BoundingBox) Dimensions() mgl32.Vec3 {
	if !b.valid {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Radius returns half the length of the box diagonal, the radius of the
// bounding sphere used for culling and picking.
func (b BoundingBox) Radius() float32 {
	return b.Dimensions().Len() / 2
}

// Contains reports whether p lies inside the box. Points on a face count.
func (b BoundingBox) Contains(p mgl32.Vec3) bool {
	if !b.valid {
		return false
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}
