package willow3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoundingBoxEmpty(t *testing.T) {
	b := NewBoundingBox()
	if !b.IsEmpty() {
		t.Error("no points should give the empty box")
	}
	if b.Radius() != 0 || b.Center() != (mgl32.Vec3{}) {
		t.Errorf("empty box radius/center = %v/%v, want 0/origin", b.Radius(), b.Center())
	}
	if b.Contains(mgl32.Vec3{}) {
		t.Error("empty box contains nothing")
	}
}

func TestBoundingBoxFromPoints(t *testing.T) {
	b := NewBoundingBox(
		mgl32.Vec3{1, -2, 3},
		mgl32.Vec3{-1, 2, 0},
		mgl32.Vec3{0, 0, 5},
	)
	if b.Min != (mgl32.Vec3{-1, -2, 0}) || b.Max != (mgl32.Vec3{1, 2, 5}) {
		t.Errorf("box = %v..%v, want [-1 -2 0]..[1 2 5]", b.Min, b.Max)
	}
	assertVec(t, "Center", b.Center(), mgl32.Vec3{0, 0, 2.5})
	assertVec(t, "Dimensions", b.Dimensions(), mgl32.Vec3{2, 4, 5})
	assertNear(t, "Radius", b.Radius(), mgl32.Vec3{2, 4, 5}.Len()/2)
}

func TestBoundingBoxSinglePoint(t *testing.T) {
	b := NewBoundingBox(mgl32.Vec3{3, 3, 3})
	if b.IsEmpty() {
		t.Error("single point box should not be empty")
	}
	if b.Radius() != 0 {
		t.Errorf("Radius = %v, want 0", b.Radius())
	}
}

func TestBoundingBoxContains(t *testing.T) {
	b := NewBoundingBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	if !b.Contains(mgl32.Vec3{0.5, 0.5, 0.5}) || !b.Contains(mgl32.Vec3{1, 0, 1}) {
		t.Error("interior and face points should be contained")
	}
	if b.Contains(mgl32.Vec3{1.1, 0.5, 0.5}) {
		t.Error("outside point should not be contained")
	}
}
