package ecs

import (
	"github.com/phanxgames/willow3d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries willow3d pick, hover and drag events for
// entity-bound nodes. Events are queued on publish and delivered by
// ProcessEvents.
var InteractionEventType = events.NewEventType[willow3d.InteractionEvent]()

// donburiStore publishes stage interactions into one world.
type donburiStore struct {
	world donburi.World
}

// NewDonburiStore returns an EntityStore publishing to InteractionEventType
// in world.
func NewDonburiStore(world donburi.World) willow3d.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event willow3d.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
