// Package willow3d is a retained-mode 3D scene graph for [Ebitengine].
//
// A [Stage] owns a tree of actors rooted at [Stage.Root]. Every actor is a
// [Node] (position, yaw/pitch/roll in degrees, per-axis scale) and a [Group]
// is a Node with children. Each frame the stage acts the tree, composes
// world transforms parent-first, culls against the camera and submits
// surviving nodes to a [Renderer].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	stage := willow3d.NewStage(640, 480)
//	box := willow3d.NewBox("box", 2, 2, 2, willow3d.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	box.AddBehavior(willow3d.Forever(willow3d.RotateBy(90, 0, 0, 1, nil)))
//	stage.AddActor(box)
//	willow3d.Run(stage, willow3d.RunConfig{Title: "Box", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Stage.ProcessInput], [Stage.Update] and [Stage.DrawTo] directly.
//
// # Transforms
//
// A node's local matrix is Translation * Scale * Rotation. Yaw turns about
// Z, pitch about Y and roll about X; angles are kept in (-360, 360). World
// matrices are composed into temporaries during draw and pick passes, so
// traversal never writes to a node's transform fields.
//
// # Behaviors
//
// A [Behavior] is attached to one node at a time and stepped by [Node.Act]
// until it reports completion. Built-ins include [Do], [Func], [Delay],
// [Sequence], [Parallel], [Repeat], [Forever] and tweens (via [gween])
// such as [MoveTo] and [RotateBy].
//
// # Picking and events
//
// [Stage.Pick] returns the visible node whose bounding sphere the camera ray
// enters first. [Stage.ProcessInput] turns the mouse, or events queued with
// [Stage.InjectClick] and friends, into [Event] values delivered to
// [Listener]s on the target and its ancestors. ECS integration is available
// via the [Donburi] adapter in willow3d/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package willow3d
