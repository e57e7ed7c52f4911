package willow3d

import (
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerState tracks the mouse between frames.
type pointerState struct {
	down     bool
	startX   float32
	startY   float32
	lastX    float32
	lastY    float32
	hitActor Actor
	hover    Actor
	pick     Actor // actor under the pointer for the current sample
	dragging bool
	button   MouseButton // button captured at press time
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Stage) SetDragDeadZone(pixels float32) {
	s.dragDeadZone = pixels
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// ProcessInput feeds one frame of pointer input through the event state
// machine. Injected events take priority over the real mouse; one is consumed
// per call. Run calls this before Update each tick.
func (s *Stage) ProcessInput() {
	if s.processInjectedInput() {
		return
	}
	mods := readModifiers()
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	s.processPointer(float32(mx), float32(my), pressed, button, mods)
}

// processPointer runs the pointer state machine for one sample.
func (s *Stage) processPointer(x, y float32, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	ray := s.camera.PickRay(x, y)
	hit, ok := s.PickRay(ray)
	var target Actor
	if ok {
		target = hit.Actor
	}
	ps.pick = target

	base := Event{
		Stage:     s,
		Target:    target,
		Hit:       hit.Intersection,
		Ray:       ray,
		ScreenX:   x,
		ScreenY:   y,
		Button:    button,
		Modifiers: mods,
	}

	// Hover enter/exit when the hovered actor changes.
	if !sameActor(target, ps.hover) {
		if ps.hover != nil {
			e := base
			e.Type = EventExit
			e.Target = ps.hover
			s.fire(&e)
		}
		if target != nil {
			e := base
			e.Type = EventEnter
			s.fire(&e)
		}
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitActor = target
		ps.dragging = false

		e := base
		e.Type = EventTouchDown
		s.fire(&e)

	case !pressed && ps.down:
		base.Button = ps.button
		if ps.dragging {
			e := base
			e.Type = EventDragEnd
			e.Target = ps.hitActor
			e.StartX, e.StartY = ps.startX, ps.startY
			e.DeltaX, e.DeltaY = x-ps.lastX, y-ps.lastY
			s.fire(&e)
		} else if ps.hitActor != nil && sameActor(ps.hitActor, target) {
			e := base
			e.Type = EventClick
			s.fire(&e)
		}

		e := base
		e.Type = EventTouchUp
		s.fire(&e)

		ps.down = false
		ps.hitActor = nil
		ps.dragging = false

	case pressed && ps.down:
		base.Button = ps.button
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx, dy := x-ps.startX, y-ps.startY
				if math32.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					e := base
					e.Type = EventDragStart
					e.Target = ps.hitActor
					e.StartX, e.StartY = ps.startX, ps.startY
					e.DeltaX, e.DeltaY = dx, dy
					s.fire(&e)
				}
			}
			if ps.dragging {
				e := base
				e.Type = EventDrag
				e.Target = ps.hitActor
				e.StartX, e.StartY = ps.startX, ps.startY
				e.DeltaX, e.DeltaY = x-ps.lastX, y-ps.lastY
				s.fire(&e)
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

func sameActor(a, b Actor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.AsNode() == b.AsNode()
}

// fire dispatches e through the tree and forwards it to the entity store.
func (s *Stage) fire(e *Event) {
	e.Picked = e.Target != nil && sameActor(e.Target, s.pointer.pick)
	if !e.Picked {
		e.Hit = Intersection{}
	}
	dispatchEvent(s.root, e)
	if s.store == nil || e.Target == nil {
		return
	}
	id := e.Target.AsNode().EntityID
	if id == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      e.Type,
		EntityID:  id,
		ScreenX:   e.ScreenX,
		ScreenY:   e.ScreenY,
		Button:    e.Button,
		Modifiers: e.Modifiers,
		StartX:    e.StartX,
		StartY:    e.StartY,
		DeltaX:    e.DeltaX,
		DeltaY:    e.DeltaY,
		Ray:       e.Ray,
		Hit:       e.Hit,
		Picked:    e.Picked,
	})
}
