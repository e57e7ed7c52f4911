package ecs

import (
	"testing"

	"github.com/phanxgames/willow3d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []willow3d.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e willow3d.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(willow3d.InteractionEvent{
		Type:     willow3d.EventTouchDown,
		EntityID: 42,
		ScreenX:  100,
		ScreenY:  200,
		Button:   willow3d.MouseButtonLeft,
	})
	store.EmitEvent(willow3d.InteractionEvent{
		Type:   willow3d.EventDrag,
		DeltaX: 3,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != willow3d.EventTouchDown || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.ScreenX != 100 || e0.ScreenY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.ScreenX, e0.ScreenY)
	}
	if e1 := received[1]; e1.Type != willow3d.EventDrag || e1.DeltaX != 3 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e willow3d.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e willow3d.InteractionEvent) {
		count2++
	})

	store.EmitEvent(willow3d.InteractionEvent{Type: willow3d.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestStageForwardsClicks(t *testing.T) {
	world := donburi.NewWorld()
	stage := willow3d.NewStage(640, 480)
	stage.SetEntityStore(NewDonburiStore(world))

	box := willow3d.NewBox("box", 2, 2, 2, willow3d.ColorWhite)
	box.EntityID = 7
	stage.AddActor(box)

	var types []willow3d.EventType
	InteractionEventType.Subscribe(world, func(w donburi.World, e willow3d.InteractionEvent) {
		if e.EntityID != 7 {
			t.Errorf("EntityID = %d, want 7", e.EntityID)
		}
		if !e.Picked {
			t.Errorf("%v: box under the pointer should be picked", e.Type)
		}
		// The ray enters the box's bounding sphere on its +Z side.
		if p, ok := e.HitPoint(); !ok || p.Z() <= 0 {
			t.Errorf("%v: HitPoint = %v, %v", e.Type, p, ok)
		}
		types = append(types, e.Type)
	})

	// The default camera looks at the origin, so the screen center hits the box.
	stage.InjectClick(320, 240)
	stage.ProcessInput()
	stage.ProcessInput()
	events.ProcessAllEvents(world)

	want := []willow3d.EventType{
		willow3d.EventEnter,
		willow3d.EventTouchDown,
		willow3d.EventClick,
		willow3d.EventTouchUp,
	}
	if len(types) != len(want) {
		t.Fatalf("got events %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}
