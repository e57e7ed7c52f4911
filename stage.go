package willow3d

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultMaxDelta caps the wall-clock step used by UpdateElapsed.
const DefaultMaxDelta = float32(1.0 / 30)

// EntityStore is the interface for optional ECS integration.
// When set on a Stage, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	ScreenX   float32
	ScreenY   float32
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float32
	StartY float32
	DeltaX float32
	DeltaY float32
	// Pick fields. Ray is the world-space pick ray; Hit is valid when
	// Picked is true, that is when the entity is under the pointer.
	Ray    Ray
	Hit    Intersection
	Picked bool
}

// HitPoint returns the world-space point where the pick ray enters the
// entity's bounding sphere. ok is false when the entity was not picked.
func (e InteractionEvent) HitPoint() (p mgl32.Vec3, ok bool) {
	return hitPoint(e.Ray, e.Hit, e.Picked)
}

// Hit is the result of a successful Stage.Pick.
type Hit struct {
	Actor Actor
	Intersection
}

// Stage owns the root group, the camera, the lighting environment and the
// renderer, and drives the per-frame update, draw and pick cycle.
type Stage struct {
	root     *Group
	camera   Camera
	env      *Environment
	renderer Renderer

	// MaxDelta caps the step taken by UpdateElapsed, in seconds.
	MaxDelta float32
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
	// ScreenshotDir is the directory where screenshots are saved.
	// Defaults to "screenshots".
	ScreenshotDir string

	debug      bool
	store      EntityStore
	updateFunc UpdateFunc

	// Wall clock for UpdateElapsed
	now      func() time.Time
	last     time.Time
	hasFrame bool

	// Input state
	pointer      pointerState
	dragDeadZone float32
	injectQueue  []syntheticPointerEvent

	// Test runner and screenshots
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewStage creates a stage with a root group, a PerspectiveCamera sized to
// the viewport, the default environment and an EbitenRenderer with no target.
func NewStage(width, height float32) *Stage {
	s := &Stage{
		camera:        NewPerspectiveCamera(width, height),
		env:           NewEnvironment(),
		renderer:      NewEbitenRenderer(nil),
		MaxDelta:      DefaultMaxDelta,
		ScreenshotDir: "screenshots",
		now:           time.Now,
		dragDeadZone:  defaultDragDeadZone,
	}
	s.root = NewGroup("root")
	s.root.stage = s
	return s
}

// Root returns the stage's root group.
func (s *Stage) Root() *Group { return s.root }

// Camera returns the active camera.
func (s *Stage) Camera() Camera { return s.camera }

// SetCamera replaces the camera. Panics if cam is nil.
func (s *Stage) SetCamera(cam Camera) {
	if cam == nil {
		panic("willow3d: camera cannot be nil")
	}
	s.camera = cam
}

// Environment returns the lighting passed to the renderer.
func (s *Stage) Environment() *Environment { return s.env }

// SetEnvironment replaces the lighting. Nil is allowed and renders unlit.
func (s *Stage) SetEnvironment(env *Environment) { s.env = env }

// Renderer returns the renderer.
func (s *Stage) Renderer() Renderer { return s.renderer }

// SetRenderer replaces the renderer. Panics if r is nil.
func (s *Stage) SetRenderer(r Renderer) {
	if r == nil {
		panic("willow3d: renderer cannot be nil")
	}
	s.renderer = r
}

// SetEntityStore sets the optional ECS bridge.
func (s *Stage) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// use panics, tree depth and child count warnings are logged and per-frame
// stats are logged at debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// IsDebugMode reports whether debug mode is on.
func (s *Stage) IsDebugMode() bool { return s.debug }

func (s *Stage) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// --- Update ---

// Update acts the whole tree with dt seconds, then advances an animated camera.
func (s *Stage) Update(dt float32) {
	s.root.Act(dt)
	if ac, ok := s.camera.(animatedCamera); ok {
		ac.Advance(dt)
	}
}

// UpdateElapsed calls Update with the wall-clock time since the previous
// call, capped at MaxDelta. The first call uses one tick at ebiten's TPS.
// Returns the step used.
func (s *Stage) UpdateElapsed() float32 {
	now := s.now()
	var dt float32
	if !s.hasFrame {
		dt = 1 / float32(ebiten.TPS())
		s.hasFrame = true
	} else {
		dt = float32(now.Sub(s.last).Seconds())
	}
	s.last = now
	if dt < 0 {
		dt = 0
	}
	if s.MaxDelta > 0 && dt > s.MaxDelta {
		dt = s.MaxDelta
	}
	s.Update(dt)
	return dt
}

// --- Draw ---

// Draw updates the camera and, if the root is visible, submits every visible
// node to the renderer between BeginBatch and EndBatch.
func (s *Stage) Draw() {
	s.camera.Update()
	if !s.root.Visible {
		return
	}

	var stats frameStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	ctx := drawContext{renderer: s.renderer, camera: s.camera, env: s.env, stats: &stats}
	s.renderer.BeginBatch(s.camera)

	root := &s.root.Node
	root.world = root.local
	stats.visited++
	submitNode(root, &ctx)
	s.root.drawChildren(root.world, 0, &ctx)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.renderer.EndBatch()

	if s.debug {
		stats.batchTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// DrawTo points an EbitenRenderer at screen, draws, and captures any queued
// screenshots. Other renderers are drawn as with Draw.
func (s *Stage) DrawTo(screen *ebiten.Image) {
	if er, ok := s.renderer.(*EbitenRenderer); ok {
		er.SetTarget(screen)
	}
	s.Draw()
	s.flushScreenshots(screen)
}

// --- Picking ---

// Pick casts the camera ray through the screen point and returns the visible
// node whose bounding sphere it enters first. Earlier nodes in traversal
// order win ties.
func (s *Stage) Pick(x, y float32) (Hit, bool) {
	return s.PickRay(s.camera.PickRay(x, y))
}

// PickRay returns the nearest visible node hit by ray.
func (s *Stage) PickRay(ray Ray) (Hit, bool) {
	var best Hit
	found := false
	if !s.root.Visible {
		return best, false
	}
	root := &s.root.Node
	root.world = root.local
	considerHit(s.root, root.world, ray, &best, &found)
	s.root.pickChildren(root.world, ray, &best, &found)
	return best, found
}

// --- Root pass-throughs ---

// AddActor adds a to the root group.
func (s *Stage) AddActor(a Actor) { s.root.AddChild(a) }

// RemoveActor removes a from the root group. Reports whether it was there.
func (s *Stage) RemoveActor(a Actor) bool { return s.root.RemoveChild(a) }

// Actors returns the root group's children.
func (s *Stage) Actors() []Actor { return s.root.Children() }

// AddBehavior attaches b to the root group.
func (s *Stage) AddBehavior(b Behavior) { s.root.AddBehavior(b) }

// AddListener registers l on the root group.
func (s *Stage) AddListener(l Listener) bool { return s.root.AddListener(l) }

// RemoveListener unregisters l from the root group.
func (s *Stage) RemoveListener(l Listener) bool { return s.root.RemoveListener(l) }

// FindByName searches the tree for the first actor named name.
func (s *Stage) FindByName(name string) Actor { return s.root.FindByName(name) }

// Clear removes every actor, behavior and listener from the root group.
func (s *Stage) Clear() { s.root.Clear() }

// SetDebugVisualization toggles the axis gizmo on the root, and on every
// descendant when recursive is true.
func (s *Stage) SetDebugVisualization(enabled, recursive bool) {
	s.root.SetDebugVisualization(enabled, recursive)
}

// Dispose frees debug geometry across the tree, then clears the root.
// The stage can be reused afterwards.
func (s *Stage) Dispose() {
	releaseDebugTree(s.root)
	s.root.Clear()
	s.injectQueue = nil
	s.pointer = pointerState{}
}
