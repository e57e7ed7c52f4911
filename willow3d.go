package willow3d

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R float32 `toml:"r"`
	G float32 `toml:"g"`
	B float32 `toml:"b"`
	A float32 `toml:"a"`
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WhitePixel is a 1x1 white image used by default for untextured models.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Ray is a half-line in world space. Direction is expected to be unit length;
// NewRay normalizes it.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Intersection describes a successful ray/bounding-sphere test.
type Intersection struct {
	// Dist2 is the squared distance from the ray origin to the point where
	// the ray enters the sphere (0 when the origin is inside it).
	Dist2 float32
	// CenterDist2 is the squared distance from the sphere center to the
	// closest point on the ray.
	CenterDist2 float32
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventTouchDown  EventType = iota // fires when a pointer button is pressed over a node
	EventTouchUp                     // fires when a pointer button is released
	EventClick                       // fires on press then release over the same node
	EventEnter                       // fires when the pointer starts hovering a node
	EventExit                        // fires when the pointer stops hovering a node
	EventDragStart                   // fires when movement exceeds the drag dead zone
	EventDrag                        // fires each frame while dragging
	EventDragEnd                     // fires when the pointer is released after dragging
)

var eventTypeNames = [...]string{
	EventTouchDown: "touchDown",
	EventTouchUp:   "touchUp",
	EventClick:     "click",
	EventEnter:     "enter",
	EventExit:      "exit",
	EventDragStart: "dragStart",
	EventDrag:      "drag",
	EventDragEnd:   "dragEnd",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
