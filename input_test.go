package willow3d

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// eventLog records every event that reaches the root.
type eventLog struct {
	events []Event
}

func (l *eventLog) Handle(e *Event) bool {
	l.events = append(l.events, *e)
	return false
}

func (l *eventLog) types() string {
	names := make([]string, len(l.events))
	for i, e := range l.events {
		names[i] = e.Type.String()
	}
	return strings.Join(names, ",")
}

func newInputStage(radius float32) (*Stage, *Node, *eventLog) {
	s, _, _ := newTestStage()
	ball := newSphereNode("ball", radius)
	s.AddActor(ball)
	log := &eventLog{}
	s.AddListener(log)
	return s, ball, log
}

func drain(s *Stage) {
	for s.PendingInput() > 0 {
		s.ProcessInput()
	}
}

func TestClickSequence(t *testing.T) {
	s, ball, log := newInputStage(1)
	s.InjectClick(0, 0)
	drain(s)

	if got := log.types(); got != "enter,touchDown,click,touchUp" {
		t.Fatalf("events = %s", got)
	}
	for _, e := range log.events {
		if e.Target != ball {
			t.Errorf("%v target = %v, want ball", e.Type, e.Target)
		}
		if e.Current != s.Root() {
			t.Errorf("%v current = %v, want root", e.Type, e.Current)
		}
		if e.Stage != s {
			t.Errorf("%v stage not set", e.Type)
		}
	}
	if log.events[1].Hit.Dist2 <= 0 {
		t.Error("touchDown should carry the hit distance")
	}
}

func TestReleaseElsewhereNoClick(t *testing.T) {
	s, _, log := newInputStage(1)
	s.InjectPress(0, 0)
	s.InjectRelease(50, 0)
	drain(s)

	if got := log.types(); got != "enter,touchDown,exit,touchUp" {
		t.Errorf("events = %s", got)
	}
	if up := log.events[3]; up.Target != nil {
		t.Errorf("touchUp over empty space target = %v, want nil", up.Target)
	}
}

func TestMissGoesToRoot(t *testing.T) {
	s, _, log := newInputStage(1)
	s.InjectClick(50, 50)
	drain(s)

	if got := log.types(); got != "touchDown,touchUp" {
		t.Errorf("events = %s", got)
	}
	for _, e := range log.events {
		if e.Target != nil || e.Current != s.Root() {
			t.Errorf("%v: target=%v current=%v, want nil and root", e.Type, e.Target, e.Current)
		}
	}
}

func TestDragSequence(t *testing.T) {
	s, ball, log := newInputStage(1)
	s.InjectDrag(0, 0, 20, 0, 5)
	drain(s)

	want := "enter,touchDown,exit,dragStart,drag,drag,drag,dragEnd,touchUp"
	if got := log.types(); got != want {
		t.Fatalf("events = %s, want %s", got, want)
	}
	for _, e := range log.events {
		switch e.Type {
		case EventDragStart, EventDrag, EventDragEnd:
			if e.Target != ball {
				t.Errorf("%v target = %v, want ball", e.Type, e.Target)
			}
			if e.StartX != 0 || e.StartY != 0 {
				t.Errorf("%v start = (%v,%v), want (0,0)", e.Type, e.StartX, e.StartY)
			}
		}
	}
	if d := log.events[4]; d.DeltaX != 5 {
		t.Errorf("first drag DeltaX = %v, want 5", d.DeltaX)
	}
}

func TestDragDeadZone(t *testing.T) {
	s, _, log := newInputStage(5)
	s.InjectPress(0, 0)
	s.InjectMove(2, 0)
	s.InjectRelease(2, 0)
	drain(s)

	if got := log.types(); got != "enter,touchDown,click,touchUp" {
		t.Errorf("events = %s", got)
	}

	log.events = nil
	s.SetDragDeadZone(1)
	s.InjectPress(0, 0)
	s.InjectMove(2, 0)
	s.InjectRelease(2, 0)
	drain(s)
	if got := log.types(); got != "touchDown,dragStart,drag,dragEnd,touchUp" {
		t.Errorf("events with smaller dead zone = %s", got)
	}
}

func TestEventsBubble(t *testing.T) {
	s, _, _ := newTestStage()
	g := NewGroup("g")
	leaf := newSphereNode("leaf", 1)
	g.AddChild(leaf)
	s.AddActor(g)

	var path []string
	record := func(name string, handled bool) Listener {
		return NewListener(func(e *Event) bool {
			if e.Type == EventClick {
				path = append(path, name+":"+e.Current.AsNode().Name)
			}
			return handled
		})
	}
	leaf.AddListener(record("leaf", false))
	g.AddListener(record("group", false))
	s.AddListener(record("root", false))

	s.InjectClick(0, 0)
	drain(s)
	if got := strings.Join(path, ","); got != "leaf:leaf,group:g,root:root" {
		t.Errorf("bubble path = %s", got)
	}

	path = nil
	g.AddListener(record("stopper", true))
	s.InjectClick(0, 0)
	drain(s)
	if got := strings.Join(path, ","); got != "leaf:leaf,group:g,stopper:g" {
		t.Errorf("bubble path with handler = %s", got)
	}
}

func TestHoverEnterExit(t *testing.T) {
	s, ball, log := newInputStage(1)
	s.InjectHover(0, 0)
	s.InjectHover(0.5, 0)
	s.InjectHover(30, 0)
	drain(s)

	if got := log.types(); got != "enter,exit" {
		t.Fatalf("events = %s", got)
	}
	if log.events[1].Target != ball {
		t.Error("exit should target the previously hovered node")
	}
}

func TestButtonAndModifiersCaptured(t *testing.T) {
	s, _, log := newInputStage(1)
	s.processPointer(0, 0, true, MouseButtonRight, ModShift|ModCtrl)
	s.processPointer(0, 0, false, MouseButtonLeft, 0)

	if got := log.types(); got != "enter,touchDown,click,touchUp" {
		t.Fatalf("events = %s", got)
	}
	if e := log.events[1]; e.Button != MouseButtonRight || e.Modifiers != ModShift|ModCtrl {
		t.Errorf("touchDown button/mods = %v/%v", e.Button, e.Modifiers)
	}
	if e := log.events[3]; e.Button != MouseButtonRight {
		t.Errorf("touchUp button = %v, want the button pressed", e.Button)
	}
}

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(e InteractionEvent) {
	r.events = append(r.events, e)
}

func TestEntityStoreForwarding(t *testing.T) {
	s, ball, _ := newInputStage(1)
	store := &recordingStore{}
	s.SetEntityStore(store)

	s.InjectClick(0, 0)
	drain(s)
	if len(store.events) != 0 {
		t.Errorf("node without EntityID forwarded %d events", len(store.events))
	}

	ball.EntityID = 9
	s.InjectClick(0, 0)
	drain(s)
	if len(store.events) != 3 {
		t.Fatalf("forwarded %d events, want 3 (touchDown, click, touchUp)", len(store.events))
	}
	for _, e := range store.events {
		if e.EntityID != 9 {
			t.Errorf("EntityID = %d, want 9", e.EntityID)
		}
	}
	if store.events[1].Type != EventClick {
		t.Errorf("second event = %v, want click", store.events[1].Type)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventDragEnd.String() != "dragEnd" {
		t.Errorf("String = %q, want dragEnd", EventDragEnd.String())
	}
	if EventType(99).String() != "unknown" {
		t.Error("out of range type should be unknown")
	}
}

func TestPickedAndHitPoint(t *testing.T) {
	s, _, log := newInputStage(1)
	s.InjectDrag(0, 0, 20, 0, 5)
	drain(s)

	for _, e := range log.events {
		switch e.Type {
		case EventEnter, EventTouchDown:
			p, ok := e.HitPoint()
			if !e.Picked || !ok {
				t.Fatalf("%v should be picked", e.Type)
			}
			assertVec(t, e.Type.String()+" hit point", p, mgl32.Vec3{0, 0, 1})
		case EventExit, EventDrag, EventDragEnd:
			if e.Picked || e.Hit != (Intersection{}) {
				t.Errorf("%v with the pointer off the target: picked=%v hit=%+v", e.Type, e.Picked, e.Hit)
			}
			if _, ok := e.HitPoint(); ok {
				t.Errorf("%v should have no hit point", e.Type)
			}
		}
	}
}

func TestEntityStoreCarriesPick(t *testing.T) {
	s, ball, _ := newInputStage(1)
	store := &recordingStore{}
	s.SetEntityStore(store)
	ball.EntityID = 3

	s.InjectClick(0, 0)
	drain(s)
	if len(store.events) == 0 {
		t.Fatal("no events forwarded")
	}
	e := store.events[0]
	if !e.Picked {
		t.Fatal("touchDown should be picked")
	}
	assertVec(t, "Ray.Direction", e.Ray.Direction, mgl32.Vec3{0, 0, -1})
	p, ok := e.HitPoint()
	if !ok {
		t.Fatal("expected a hit point")
	}
	assertVec(t, "HitPoint", p, mgl32.Vec3{0, 0, 1})
}
