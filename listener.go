package willow3d

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Event is an interaction delivered to listeners.
type Event struct {
	Type EventType
	// Stage that produced the event.
	Stage *Stage
	// Target is the actor the event is about: the actor under the pointer,
	// or the hovered or pressed actor for exit and drag events. Nil when
	// nothing was hit.
	Target Actor
	// Current is the actor whose listeners are being run. It changes as the
	// event bubbles towards the root.
	Current Actor
	// Picked reports whether Target is under the pointer for this sample.
	Picked bool
	// Hit is valid when Picked is true and zero otherwise.
	Hit Intersection
	// Ray is the world-space pick ray for the pointer position.
	Ray Ray

	ScreenX, ScreenY float32
	Button           MouseButton
	Modifiers        KeyModifiers

	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX, StartY float32
	DeltaX, DeltaY float32
}

// Listener receives events. Handle reports whether the event was consumed,
// which stops bubbling. Listeners are compared by identity, so the dynamic
// type must be comparable (use a pointer type).
type Listener interface {
	Handle(e *Event) bool
}

// FuncListener adapts a function to Listener.
type FuncListener struct {
	fn func(e *Event) bool
}

// NewListener wraps fn. Each call returns a distinct listener.
func NewListener(fn func(e *Event) bool) *FuncListener {
	return &FuncListener{fn: fn}
}

// Handle implements Listener.
func (l *FuncListener) Handle(e *Event) bool {
	if l.fn == nil {
		return false
	}
	return l.fn(e)
}

// dispatchEvent delivers e to the target and then to each ancestor until a
// listener handles it. With no target the root receives it. Listener slices
// are snapshots, so listeners may add or remove listeners freely.
func dispatchEvent(root *Group, e *Event) bool {
	if e.Target == nil {
		e.Current = root
		return root.Fire(e)
	}
	var cur Actor = e.Target
	for cur != nil {
		e.Current = cur
		n := cur.AsNode()
		if n.Fire(e) {
			return true
		}
		if n.parent == nil {
			return false
		}
		cur = n.parent.self
	}
	return false
}

// HitPoint returns the world-space point where the pick ray enters Target's
// bounding sphere. ok is false when Target is not under the pointer.
func (e *Event) HitPoint() (p mgl32.Vec3, ok bool) {
	return hitPoint(e.Ray, e.Hit, e.Picked)
}

func hitPoint(ray Ray, in Intersection, picked bool) (mgl32.Vec3, bool) {
	if !picked || ray.Direction.Len() == 0 {
		return mgl32.Vec3{}, false
	}
	return ray.Origin.Add(ray.Direction.Normalize().Mul(math32.Sqrt(in.Dist2))), true
}
