package willow3d

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewPerspectiveCameraDefaults(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	if c.FieldOfView != DefaultFieldOfView || c.Near != DefaultNear || c.Far != DefaultFar {
		t.Errorf("fov/near/far = %v/%v/%v, want %v/%v/%v",
			c.FieldOfView, c.Near, c.Far, DefaultFieldOfView, DefaultNear, DefaultFar)
	}
	assertVec(t, "Position", c.Position, mgl32.Vec3{0, 0, 10})
	assertVec(t, "Direction", c.Direction, mgl32.Vec3{0, 0, -1})
	w, h := c.ViewportSize()
	if w != 640 || h != 480 {
		t.Errorf("ViewportSize = %v,%v, want 640,480", w, h)
	}
}

func TestPickRayCenter(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	ray := c.PickRay(320, 240)
	assertVec(t, "Direction", ray.Direction, mgl32.Vec3{0, 0, -1})
	assertNear(t, "Origin.X", ray.Origin[0], 0)
	assertNear(t, "Origin.Y", ray.Origin[1], 0)
	// The ray starts on the near plane.
	if z := ray.Origin[2]; math32.Abs(z-9) > 0.01 {
		t.Errorf("Origin.Z = %v, want ~9", z)
	}
}

func TestPickRayCorners(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	left := c.PickRay(0, 240)
	if left.Direction[0] >= 0 {
		t.Errorf("left edge direction = %v, want negative x", left.Direction)
	}
	top := c.PickRay(320, 0)
	if top.Direction[1] <= 0 {
		t.Errorf("top edge direction = %v, want positive y (screen y grows down)", top.Direction)
	}
}

func TestPickRayZeroViewport(t *testing.T) {
	c := NewPerspectiveCamera(0, 0)
	ray := c.PickRay(10, 10)
	if ray.Origin != c.Position {
		t.Errorf("Origin = %v, want camera position", ray.Origin)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	x, y, ok := c.Project(mgl32.Vec3{0, 0, 0})
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	assertNear(t, "x", x, 320)
	assertNear(t, "y", y, 240)

	if _, _, ok := c.Project(mgl32.Vec3{0, 0, 20}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestPickRayHitsProjectedPoint(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	c.Position = mgl32.Vec3{3, 4, 12}
	c.LookAt(mgl32.Vec3{1, -1, 0})
	c.Update()

	target := mgl32.Vec3{2, 1, -1}
	x, y, ok := c.Project(target)
	if !ok {
		t.Fatal("target should be visible")
	}
	ball := newSphereNode("ball", 0.1)
	ball.SetPosition(target[0], target[1], target[2])
	if _, hit := ball.Intersects(c.PickRay(x, y)); !hit {
		t.Error("ray through the projected point should hit the node")
	}
}

func TestCameraSphereVisible(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"origin", mgl32.Vec3{0, 0, 0}, 1, true},
		{"behind", mgl32.Vec3{0, 0, 20}, 1, false},
		{"far right", mgl32.Vec3{1000, 0, 0}, 1, false},
		{"past far plane", mgl32.Vec3{0, 0, -400}, 1, false},
		{"straddles edge", mgl32.Vec3{8, 0, 0}, 5, true},
	}
	for _, tt := range tests {
		if got := c.SphereVisible(tt.center, tt.radius); got != tt.want {
			t.Errorf("%s: SphereVisible = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCameraLookAt(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	c.LookAt(mgl32.Vec3{10, 0, 10})
	assertVec(t, "Direction", c.Direction, mgl32.Vec3{1, 0, 0})
	assertVec(t, "Up", c.Up, mgl32.Vec3{0, 1, 0})

	before := c.Direction
	c.LookAt(c.Position)
	if c.Direction != before {
		t.Error("looking at own position should be a no-op")
	}
}

func TestCameraUpdateAfterMove(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	c.Position = mgl32.Vec3{100, 0, 10}
	c.Update()
	if c.SphereVisible(mgl32.Vec3{0, 0, 0}, 1) {
		t.Error("origin should be out of view after moving the camera")
	}
	if !c.SphereVisible(mgl32.Vec3{100, 0, 0}, 1) {
		t.Error("point ahead of the moved camera should be visible")
	}
}

func TestCameraFollow(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	n := NewNode("target")
	n.SetPosition(5, 0, 0)
	c.Follow(n, mgl32.Vec3{0, 0, 10}, 1)
	c.Advance(0.1)
	assertVec(t, "Position", c.Position, mgl32.Vec3{5, 0, 10})

	c.Follow(n, mgl32.Vec3{0, 0, 10}, 0.5)
	n.SetPosition(15, 0, 0)
	c.Advance(0.1)
	assertVec(t, "Position", c.Position, mgl32.Vec3{10, 0, 10})

	c.Unfollow()
	n.SetPosition(100, 0, 0)
	c.Advance(0.1)
	assertVec(t, "Position", c.Position, mgl32.Vec3{10, 0, 10})
}

func TestCameraMoveTo(t *testing.T) {
	c := NewPerspectiveCamera(640, 480)
	c.MoveTo(mgl32.Vec3{0, 0, 20}, 1, nil)
	if !c.IsMoving() {
		t.Fatal("expected IsMoving")
	}
	c.Advance(0.5)
	assertNear(t, "z", c.Position[2], 15)
	c.Advance(0.5)
	assertNear(t, "z", c.Position[2], 20)
	if c.IsMoving() {
		t.Error("move should be finished")
	}
}

func TestStageUpdateAdvancesPerspectiveCamera(t *testing.T) {
	s := NewStage(640, 480)
	cam := s.Camera().(*PerspectiveCamera)
	cam.MoveTo(mgl32.Vec3{0, 0, 30}, 0.5, nil)
	s.Update(0.25)
	s.Update(0.25)
	assertNear(t, "z", cam.Position[2], 30)
}

func TestHorizontalFieldOfView(t *testing.T) {
	c := NewPerspectiveCamera(480, 480)
	if h := c.HorizontalFieldOfView(); math32.Abs(h-c.FieldOfView) > 0.01 {
		t.Errorf("HorizontalFieldOfView = %v, want %v for a square viewport", h, c.FieldOfView)
	}
	c.SetViewport(960, 480)
	if c.HorizontalFieldOfView() <= c.FieldOfView {
		t.Error("wide viewport should have a wider horizontal field of view")
	}
}
