package willow3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// identityTransform is the identity 4x4 matrix.
var identityTransform = mgl32.Ident4()

// normalizeDegrees wraps an angle into (-360, 360), keeping its sign.
func normalizeDegrees(deg float32) float32 {
	if deg > -360 && deg < 360 {
		return deg
	}
	return math32.Mod(deg, 360)
}

// eulerRotation builds a rotation matrix from three angles in degrees,
// applied as Ry(aboutY) * Rx(aboutX) * Rz(aboutZ).
func eulerRotation(aboutY, aboutX, aboutZ float32) mgl32.Mat4 {
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(aboutY))
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(aboutX))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(aboutZ))
	return ry.Mul4(rx).Mul4(rz)
}

// rotationFromAngles maps yaw/pitch/roll onto the Euler builder.
//
// The builder labels its first argument yaw but turns about Y, which in this
// package's convention is pitch. Feeding (pitch, roll, yaw) makes yaw turn
// about Z, pitch about Y and roll about X. Do not reorder.
func rotationFromAngles(yaw, pitch, roll float32) mgl32.Mat4 {
	return eulerRotation(pitch, roll, yaw)
}

// computeLocalTransform returns Translation * Scale * Rotation for a node.
func computeLocalTransform(n *Node) mgl32.Mat4 {
	t := mgl32.Translate3D(n.x, n.y, n.z)
	s := mgl32.Scale3D(n.scaleX, n.scaleY, n.scaleZ)
	return t.Mul4(s).Mul4(n.rotation)
}

// composeWorld returns parent * local. Both arguments are values, so the
// result never aliases ancestor state.
func composeWorld(parent, local mgl32.Mat4) mgl32.Mat4 {
	return parent.Mul4(local)
}

// translationOf extracts the translation column of an affine matrix.
func translationOf(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// intersectSphere tests a ray against a sphere. Rays pointing away from the
// center never hit, and neither does a zero radius or a zero direction.
// The direction need not be normalized; distances are in world units.
func intersectSphere(center mgl32.Vec3, radius float32, ray Ray) (Intersection, bool) {
	if radius <= 0 {
		return Intersection{}, false
	}
	dirLen := ray.Direction.Len()
	if dirLen == 0 {
		return Intersection{}, false
	}
	dir := ray.Direction.Mul(1 / dirLen)
	along := dir.Dot(center.Sub(ray.Origin))
	if along < 0 {
		return Intersection{}, false
	}
	d := center.Sub(ray.Origin.Add(dir.Mul(along)))
	d2 := d.Dot(d)
	r2 := radius * radius
	if d2 > r2 {
		return Intersection{}, false
	}
	entry := along - math32.Sqrt(r2-d2)
	if entry < 0 {
		entry = 0
	}
	return Intersection{Dist2: entry * entry, CenterDist2: d2}, true
}

// --- Transform property setters ---

// updateLocal recomputes the local matrix after a transform field changed.
func (n *Node) updateLocal() {
	n.local = computeLocalTransform(n)
}

// updateRotation rebuilds the rotation matrix and the local matrix.
func (n *Node) updateRotation() {
	n.rotation = rotationFromAngles(n.yaw, n.pitch, n.roll)
	n.local = computeLocalTransform(n)
}

// SetPosition sets the node's local position.
func (n *Node) SetPosition(x, y, z float32) {
	n.x, n.y, n.z = x, y, z
	n.updateLocal()
}

// Translate moves the node by the given offset in its parent's space.
func (n *Node) Translate(dx, dy, dz float32) {
	n.x += dx
	n.y += dy
	n.z += dz
	n.updateLocal()
}

// MoveBy translates the node in its local XY plane.
func (n *Node) MoveBy(dx, dy float32) {
	n.Translate(dx, dy, 0)
}

// Position returns the local position.
func (n *Node) Position() mgl32.Vec3 { return mgl32.Vec3{n.x, n.y, n.z} }

// X returns the local x coordinate.
func (n *Node) X() float32 { return n.x }

// Y returns the local y coordinate.
func (n *Node) Y() float32 { return n.y }

// Z returns the local z coordinate.
func (n *Node) Z() float32 { return n.z }

// SetX sets the local x coordinate.
func (n *Node) SetX(x float32) {
	n.x = x
	n.updateLocal()
}

// SetY sets the local y coordinate.
func (n *Node) SetY(y float32) {
	n.y = y
	n.updateLocal()
}

// SetZ sets the local z coordinate.
func (n *Node) SetZ(z float32) {
	n.z = z
	n.updateLocal()
}

// SetScale sets the per-axis scale.
func (n *Node) SetScale(sx, sy, sz float32) {
	n.scaleX, n.scaleY, n.scaleZ = sx, sy, sz
	n.updateLocal()
}

// SetScaleUniform sets all three scale components to s.
func (n *Node) SetScaleUniform(s float32) {
	n.SetScale(s, s, s)
}

// Scale adds the given amounts to the current scale.
func (n *Node) Scale(dx, dy, dz float32) {
	n.scaleX += dx
	n.scaleY += dy
	n.scaleZ += dz
	n.updateLocal()
}

// ScaleUniform adds d to every scale component.
func (n *Node) ScaleUniform(d float32) {
	n.Scale(d, d, d)
}

// ScaleX returns the x scale.
func (n *Node) ScaleX() float32 { return n.scaleX }

// ScaleY returns the y scale.
func (n *Node) ScaleY() float32 { return n.scaleY }

// ScaleZ returns the z scale.
func (n *Node) ScaleZ() float32 { return n.scaleZ }

// ScaleVec returns the scale as a vector.
func (n *Node) ScaleVec() mgl32.Vec3 { return mgl32.Vec3{n.scaleX, n.scaleY, n.scaleZ} }

// SetScaleX sets the x scale.
func (n *Node) SetScaleX(sx float32) {
	n.scaleX = sx
	n.updateLocal()
}

// SetScaleY sets the y scale.
func (n *Node) SetScaleY(sy float32) {
	n.scaleY = sy
	n.updateLocal()
}

// SetScaleZ sets the z scale.
func (n *Node) SetScaleZ(sz float32) {
	n.scaleZ = sz
	n.updateLocal()
}

// SetRotation sets yaw, pitch and roll in degrees.
func (n *Node) SetRotation(yaw, pitch, roll float32) {
	n.yaw = normalizeDegrees(yaw)
	n.pitch = normalizeDegrees(pitch)
	n.roll = normalizeDegrees(roll)
	n.updateRotation()
}

// Rotate adds the given angles in degrees to the current rotation.
func (n *Node) Rotate(dyaw, dpitch, droll float32) {
	n.SetRotation(n.yaw+dyaw, n.pitch+dpitch, n.roll+droll)
}

// SetYaw sets the rotation about the up (Z) axis in degrees.
func (n *Node) SetYaw(deg float32) {
	n.yaw = normalizeDegrees(deg)
	n.updateRotation()
}

// SetPitch sets the rotation about the Y axis in degrees.
func (n *Node) SetPitch(deg float32) {
	n.pitch = normalizeDegrees(deg)
	n.updateRotation()
}

// SetRoll sets the rotation about the X axis in degrees.
func (n *Node) SetRoll(deg float32) {
	n.roll = normalizeDegrees(deg)
	n.updateRotation()
}

// RotateYaw adds deg to the yaw.
func (n *Node) RotateYaw(deg float32) { n.SetYaw(n.yaw + deg) }

// RotatePitch adds deg to the pitch.
func (n *Node) RotatePitch(deg float32) { n.SetPitch(n.pitch + deg) }

// RotateRoll adds deg to the roll.
func (n *Node) RotateRoll(deg float32) { n.SetRoll(n.roll + deg) }

// Yaw returns the yaw in degrees.
func (n *Node) Yaw() float32 { return n.yaw }

// Pitch returns the pitch in degrees.
func (n *Node) Pitch() float32 { return n.pitch }

// Roll returns the roll in degrees.
func (n *Node) Roll() float32 { return n.roll }

// --- World transforms ---

// LocalTransform returns the node's local matrix.
func (n *Node) LocalTransform() mgl32.Mat4 {
	return n.local
}

// WorldTransform composes the local matrix with every ancestor's local
// matrix. It is computed fresh on each call and also refreshes the value
// returned by DrawTransform.
func (n *Node) WorldTransform() mgl32.Mat4 {
	w := n.local
	for p := n.parent; p != nil; p = p.parent {
		w = composeWorld(p.local, w)
	}
	n.world = w
	return w
}

// DrawTransform returns the world matrix computed by the most recent draw
// or pick pass. Renderers read it from Submit.
func (n *Node) DrawTransform() mgl32.Mat4 {
	return n.world
}

// WorldPosition returns the translation of the freshly computed world matrix.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return translationOf(n.WorldTransform())
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return transformPoint(n.WorldTransform(), p)
}

// WorldToLocal converts a world-space point to this node's local space.
// Returns p unchanged if the world matrix is singular.
func (n *Node) WorldToLocal(p mgl32.Vec3) mgl32.Vec3 {
	w := n.WorldTransform()
	if w.Det() == 0 {
		return p
	}
	return transformPoint(w.Inv(), p)
}

// boundsCenter returns the world-space center of the bounding sphere for a
// given world matrix: the world translation plus the local center offset.
func (n *Node) boundsCenter(world mgl32.Mat4) mgl32.Vec3 {
	return translationOf(world).Add(n.center)
}

// intersectsWorld runs the sphere test against an explicit world matrix.
func (n *Node) intersectsWorld(world mgl32.Mat4, ray Ray) (Intersection, bool) {
	return intersectSphere(n.boundsCenter(world), n.radius, ray)
}

// Intersects tests the ray against the node's world-space bounding sphere.
func (n *Node) Intersects(ray Ray) (Intersection, bool) {
	return n.intersectsWorld(n.WorldTransform(), ray)
}
