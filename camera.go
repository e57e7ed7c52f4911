package willow3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the view used for drawing and picking.
type Camera interface {
	// Update recomputes derived matrices. Called at the start of every draw.
	Update()
	// PickRay returns the world-space ray through a screen point.
	PickRay(x, y float32) Ray
	// SphereVisible reports whether a world-space sphere may be on screen.
	SphereVisible(center mgl32.Vec3, radius float32) bool
}

// animatedCamera is implemented by cameras that move over time. Stage.Update
// advances them after the tree has acted.
type animatedCamera interface {
	Advance(dt float32)
}

// Default PerspectiveCamera settings.
const (
	DefaultFieldOfView = 67
	DefaultNear        = 1
	DefaultFar         = 300
)

// moveAnim holds active move-to tweens for the camera position.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// PerspectiveCamera is a pinhole camera with a symmetric frustum.
type PerspectiveCamera struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Up        mgl32.Vec3

	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float32
	Near, Far   float32
	// ViewportWidth and ViewportHeight are the screen size in pixels.
	ViewportWidth, ViewportHeight float32

	view        mgl32.Mat4
	projection  mgl32.Mat4
	combined    mgl32.Mat4
	invCombined mgl32.Mat4
	frustum     Frustum

	followTarget *Node
	followOffset mgl32.Vec3
	followLerp   float32

	move *moveAnim
}

// NewPerspectiveCamera creates a camera at (0, 0, 10) looking down -Z with Y up.
func NewPerspectiveCamera(viewportWidth, viewportHeight float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Position:       mgl32.Vec3{0, 0, 10},
		Direction:      mgl32.Vec3{0, 0, -1},
		Up:             mgl32.Vec3{0, 1, 0},
		FieldOfView:    DefaultFieldOfView,
		Near:           DefaultNear,
		Far:            DefaultFar,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
	c.Update()
	return c
}

// Update recomputes the view, projection and combined matrices and the frustum.
func (c *PerspectiveCamera) Update() {
	aspect := float32(1)
	if c.ViewportHeight > 0 {
		aspect = c.ViewportWidth / c.ViewportHeight
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FieldOfView), aspect, c.Near, c.Far)
	c.view = mgl32.LookAtV(c.Position, c.Position.Add(c.Direction), c.Up)
	c.combined = c.projection.Mul4(c.view)
	c.invCombined = c.combined.Inv()
	c.frustum = FrustumFromMatrix(c.combined)
}

// View returns the view matrix from the last Update.
func (c *PerspectiveCamera) View() mgl32.Mat4 { return c.view }

// Projection returns the projection matrix from the last Update.
func (c *PerspectiveCamera) Projection() mgl32.Mat4 { return c.projection }

// Combined returns projection * view from the last Update.
func (c *PerspectiveCamera) Combined() mgl32.Mat4 { return c.combined }

// Frustum returns the view volume from the last Update.
func (c *PerspectiveCamera) Frustum() *Frustum { return &c.frustum }

// SetViewport changes the screen size used for projection and picking.
func (c *PerspectiveCamera) SetViewport(width, height float32) {
	c.ViewportWidth = width
	c.ViewportHeight = height
}

// LookAt turns the camera towards a world-space point, keeping Up orthogonal.
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Dot(dir) == 0 {
		return
	}
	c.Direction = dir.Normalize()
	right := c.Direction.Cross(c.Up)
	if right.Dot(right) == 0 {
		return
	}
	c.Up = right.Cross(c.Direction).Normalize()
}

// unproject maps a normalized device coordinate to world space.
func (c *PerspectiveCamera) unproject(ndcX, ndcY, ndcZ float32) mgl32.Vec3 {
	v := c.invCombined.Mul4x1(mgl32.Vec4{ndcX, ndcY, ndcZ, 1})
	if v[3] == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v[3])
}

// PickRay returns a ray from the near plane through the screen point (x, y),
// with y growing downward.
func (c *PerspectiveCamera) PickRay(x, y float32) Ray {
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return NewRay(c.Position, c.Direction)
	}
	nx := 2*x/c.ViewportWidth - 1
	ny := 1 - 2*y/c.ViewportHeight
	near := c.unproject(nx, ny, -1)
	far := c.unproject(nx, ny, 1)
	return NewRay(near, far.Sub(near))
}

// SphereVisible tests a world-space sphere against the frustum.
func (c *PerspectiveCamera) SphereVisible(center mgl32.Vec3, radius float32) bool {
	return c.frustum.SphereVisible(center, radius)
}

// Project maps a world-space point to screen coordinates. ok is false for
// points behind the camera.
func (c *PerspectiveCamera) Project(p mgl32.Vec3) (x, y float32, ok bool) {
	clip := c.combined.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	x = (ndc[0] + 1) / 2 * c.ViewportWidth
	y = (1 - ndc[1]) / 2 * c.ViewportHeight
	return x, y, true
}

// Follow makes the camera track a node's world position plus offset. A lerp
// of 1 snaps immediately; lower values give smoother following.
func (c *PerspectiveCamera) Follow(n *Node, offset mgl32.Vec3, lerp float32) {
	c.followTarget = n
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *PerspectiveCamera) Unfollow() {
	c.followTarget = nil
}

// MoveTo animates the camera position over duration seconds.
func (c *PerspectiveCamera) MoveTo(target mgl32.Vec3, duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	m := &moveAnim{}
	for i := 0; i < 3; i++ {
		m.tweens[i] = gween.New(c.Position[i], target[i], duration, fn)
	}
	c.move = m
}

// IsMoving reports whether a MoveTo animation is in progress.
func (c *PerspectiveCamera) IsMoving() bool {
	return c.move != nil
}

// Advance steps follow tracking and MoveTo animations. Stage.Update calls it.
func (c *PerspectiveCamera) Advance(dt float32) {
	if c.followTarget != nil && !c.followTarget.IsDisposed() {
		target := c.followTarget.WorldPosition().Add(c.followOffset)
		lerp := c.followLerp
		if lerp <= 0 || lerp > 1 {
			lerp = 1
		}
		c.Position = c.Position.Add(target.Sub(c.Position).Mul(lerp))
	}

	if c.move != nil {
		all := true
		for i := 0; i < 3; i++ {
			if c.move.done[i] {
				continue
			}
			val, done := c.move.tweens[i].Update(dt)
			c.Position[i] = val
			c.move.done[i] = done
			if !done {
				all = false
			}
		}
		if all {
			c.move = nil
		}
	}
}

// HorizontalFieldOfView returns the horizontal field of view in degrees.
func (c *PerspectiveCamera) HorizontalFieldOfView() float32 {
	if c.ViewportHeight <= 0 {
		return c.FieldOfView
	}
	aspect := c.ViewportWidth / c.ViewportHeight
	half := mgl32.DegToRad(c.FieldOfView) / 2
	return mgl32.RadToDeg(2 * math32.Atan(math32.Tan(half)*aspect))
}
