package willow3d

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Actor is anything that can live in the scene graph. *Node and *Group
// implement it; application types usually embed one of them.
type Actor interface {
	AsNode() *Node
}

// GroupActor is an Actor that owns children.
type GroupActor interface {
	Actor
	AsGroup() *Group
}

// Animator is an opaque per-node animation driver ticked by Act.
type Animator interface {
	Update(dt float32)
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, willow3d is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a transformable, drawable and pickable scene element. The zero
// value is not usable; create nodes with NewNode or one of the model
// constructors.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Visible gates drawing and picking of this node and its subtree.
	Visible bool
	// Color tints the model. Multiplied with Model.Color at render time.
	Color Color
	// Animation is ticked after behaviors in Act.
	Animation Animator

	// Metadata
	UserData any
	EntityID uint32

	// Transform (local)
	x, y, z                float32
	scaleX, scaleY, scaleZ float32
	yaw, pitch, roll       float32

	// Computed
	rotation mgl32.Mat4
	local    mgl32.Mat4
	world    mgl32.Mat4

	// Geometry
	model  *Model
	bounds BoundingBox
	center mgl32.Vec3
	radius float32

	// Hierarchy, maintained by Group and Stage only
	self   Actor
	parent *Group
	stage  *Stage

	behaviors []Behavior
	listeners []Listener

	debug      bool
	debugModel *Model
	debugReach float32
	disposed   bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.scaleX = 1
	n.scaleY = 1
	n.scaleZ = 1
	n.Color = ColorWhite
	n.Visible = true
	n.rotation = identityTransform
	n.local = identityTransform
	n.world = identityTransform
	n.self = n
}

// setModel binds geometry and derives the bounding volume. Only called by
// constructors; bounds are immutable afterwards.
func (n *Node) setModel(m *Model) {
	n.model = m
	if m != nil {
		n.bounds = m.Bounds()
	}
	n.center = n.bounds.Center()
	n.radius = n.bounds.Radius()
}

// NewNode creates a node with no geometry. It can be transformed and carry
// behaviors, but it is never submitted or picked.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewModelNode creates a node that renders the given model.
func NewModelNode(name string, m *Model) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	n.setModel(m)
	return n
}

// NewBox creates a node rendering a box centered on its origin.
func NewBox(name string, width, height, depth float32, c Color) *Node {
	return NewModelNode(name, NewBoxModel(width, height, depth, c))
}

// NewImage3D creates a flat textured rectangle of the given size. img may be
// nil for a solid color.
func NewImage3D(name string, width, height float32, c Color, img *ebiten.Image) *Node {
	return NewModelNode(name, NewRectModel(width, height, 0, c, img))
}

// AsNode returns n. It satisfies Actor.
func (n *Node) AsNode() *Node { return n }

// Model returns the node's geometry, or nil.
func (n *Node) Model() *Model { return n.model }

// BoundingBox returns the local-space bounds computed at construction.
func (n *Node) BoundingBox() BoundingBox { return n.bounds }

// Center returns the local-space center of the bounding volume.
func (n *Node) Center() mgl32.Vec3 { return n.center }

// Dimensions returns the size of the bounding box.
func (n *Node) Dimensions() mgl32.Vec3 { return n.bounds.Dimensions() }

// Radius returns the bounding sphere radius.
func (n *Node) Radius() float32 { return n.radius }

// hasGeometry reports whether Draw has anything to submit for this node.
func (n *Node) hasGeometry() bool {
	return n.model != nil || n.debugModel != nil
}

// inView reports whether any of the node's geometry may be visible: the
// model's bounding sphere, or a sphere around the origin enclosing the
// debug gizmo.
func (n *Node) inView(cam Camera) bool {
	if n.model != nil && cam.SphereVisible(n.boundsCenter(n.world), n.radius) {
		return true
	}
	return n.debugModel != nil && cam.SphereVisible(translationOf(n.world), n.debugReach)
}

// --- Hierarchy ---

// Parent returns the owning group, or nil.
func (n *Node) Parent() *Group { return n.parent }

// HasParent reports whether the node is attached to a group.
func (n *Node) HasParent() bool { return n.parent != nil }

// Stage returns the stage this node is attached to, or nil.
func (n *Node) Stage() *Stage { return n.stage }

// Remove detaches the node from its parent. Reports whether it had one.
func (n *Node) Remove() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.RemoveChild(n)
}

// IsDescendantOf reports whether actor is n or one of its ancestors.
// Panics if actor is nil.
func (n *Node) IsDescendantOf(actor Actor) bool {
	target := mustNode(actor)
	for p := n; p != nil; p = p.parentNode() {
		if p == target {
			return true
		}
	}
	return false
}

// IsAscendantOf reports whether n is actor or one of its ancestors.
// Panics if actor is nil.
func (n *Node) IsAscendantOf(actor Actor) bool {
	return mustNode(actor).IsDescendantOf(n)
}

// mustNode returns actor's node, panicking on a nil or typed-nil actor.
func mustNode(actor Actor) *Node {
	if actor == nil {
		panic("willow3d: actor cannot be nil")
	}
	n := actor.AsNode()
	if n == nil {
		panic("willow3d: actor cannot be nil")
	}
	return n
}

// parentNode returns the parent's embedded node, or nil.
func (n *Node) parentNode() *Node {
	if n.parent == nil {
		return nil
	}
	return &n.parent.Node
}

// Depth returns the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// --- Behaviors ---

// AddBehavior attaches b to n. A behavior owned by another node is moved.
// Panics if b is nil or nested in a composite behavior.
func (n *Node) AddBehavior(b Behavior) {
	if b == nil {
		panic("willow3d: cannot add nil behavior")
	}
	if b.Composite() != nil {
		panic("willow3d: behavior belongs to a composite")
	}
	if prev := b.Node(); prev != nil {
		if prev == n {
			return
		}
		prev.RemoveBehavior(b)
	}
	n.behaviors = append(n.behaviors[:len(n.behaviors):len(n.behaviors)], b)
	b.setNode(n)
}

// RemoveBehavior detaches b. Reports whether b was attached to n.
func (n *Node) RemoveBehavior(b Behavior) bool {
	for i, cur := range n.behaviors {
		if cur != b {
			continue
		}
		next := make([]Behavior, 0, len(n.behaviors)-1)
		next = append(next, n.behaviors[:i]...)
		n.behaviors = append(next, n.behaviors[i+1:]...)
		b.setNode(nil)
		return true
	}
	return false
}

// ClearBehaviors detaches every behavior.
func (n *Node) ClearBehaviors() {
	old := n.behaviors
	n.behaviors = nil
	for _, b := range old {
		b.setNode(nil)
	}
}

// Behaviors returns the attached behaviors in execution order. The returned
// slice MUST NOT be mutated by the caller.
func (n *Node) Behaviors() []Behavior {
	return n.behaviors
}

// HasBehaviors reports whether any behavior is attached.
func (n *Node) HasBehaviors() bool {
	return len(n.behaviors) > 0
}

// Act steps every attached behavior by dt in insertion order, removing those
// that complete, then ticks Animation. Behaviors added during the pass run
// from the next call; behaviors removed during the pass are not stepped.
func (n *Node) Act(dt float32) {
	for _, b := range n.behaviors {
		if b.Node() != n {
			continue
		}
		if b.Act(dt) && b.Node() == n {
			n.RemoveBehavior(b)
		}
	}
	if n.Animation != nil {
		n.Animation.Update(dt)
	}
}

// --- Listeners ---

// AddListener registers l. Returns false if l is already registered.
// Panics if l is nil.
func (n *Node) AddListener(l Listener) bool {
	if l == nil {
		panic("willow3d: cannot add nil listener")
	}
	for _, cur := range n.listeners {
		if cur == l {
			return false
		}
	}
	n.listeners = append(n.listeners[:len(n.listeners):len(n.listeners)], l)
	return true
}

// RemoveListener unregisters l. Reports whether it was registered.
func (n *Node) RemoveListener(l Listener) bool {
	for i, cur := range n.listeners {
		if cur != l {
			continue
		}
		next := make([]Listener, 0, len(n.listeners)-1)
		next = append(next, n.listeners[:i]...)
		n.listeners = append(next, n.listeners[i+1:]...)
		return true
	}
	return false
}

// ClearListeners unregisters every listener.
func (n *Node) ClearListeners() {
	n.listeners = nil
}

// Listeners returns the registered listeners. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) Listeners() []Listener {
	return n.listeners
}

// Fire delivers e to n's listeners. Reports whether one handled it.
func (n *Node) Fire(e *Event) bool {
	handled := false
	for _, l := range n.listeners {
		if l.Handle(e) {
			handled = true
		}
	}
	return handled
}

// Clear removes all behaviors and listeners.
func (n *Node) Clear() {
	n.ClearBehaviors()
	n.ClearListeners()
}

// --- Debug visualization ---

// SetDebug toggles the axis gizmo drawn at the node's origin.
func (n *Node) SetDebug(enabled bool) {
	if n.debug == enabled {
		return
	}
	n.debug = enabled
	if enabled {
		n.debugModel = newAxisModel(n.radius)
		n.debugReach = n.debugModel.reach()
		return
	}
	n.releaseDebugModel()
}

// Debug reports whether the axis gizmo is enabled.
func (n *Node) Debug() bool { return n.debug }

// DebugModel returns the axis gizmo geometry, or nil when debug is off.
func (n *Node) DebugModel() *Model { return n.debugModel }

func (n *Node) releaseDebugModel() {
	if n.debugModel != nil {
		n.debugModel.Dispose()
		n.debugModel = nil
	}
}

// --- Disposal ---

// Dispose detaches the node, drops behaviors and listeners and releases
// renderer resources the node owns. The model is not disposed, since models
// may be shared.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.Remove()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.Clear()
	n.debug = false
	n.releaseDebugModel()
	n.parent = nil
	n.stage = nil
	n.Animation = nil
	n.UserData = nil
}

// IsDisposed reports whether Dispose has been called.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// String returns the node's name, or the name of its concrete type.
func (n *Node) String() string {
	if n.Name != "" {
		return n.Name
	}
	t := reflect.TypeOf(n.self)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
