// Package ecs bridges willow3d pointer picking into an ECS world.
//
// [NewDonburiStore] returns a willow3d.EntityStore that republishes every
// interaction on a node with a non-zero EntityID as an
// [InteractionEventType] event in a [Donburi] world. Besides the screen
// position and drag deltas, each event carries the world-space pick ray and,
// when the entity was under the pointer, its ray/bounding-sphere
// intersection, so systems can place effects at
// willow3d.InteractionEvent.HitPoint without re-picking.
//
// Usage:
//
//	stage.SetEntityStore(ecs.NewDonburiStore(world))
//	ecs.InteractionEventType.Subscribe(world, onPick)
//	// once per tick, after stage input:
//	ecs.InteractionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
