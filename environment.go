package willow3d

import "github.com/go-gl/mathgl/mgl32"

// DirectionalLight lights every surface from one direction.
type DirectionalLight struct {
	Color Color
	// Direction the light travels, world space. Need not be normalized.
	Direction mgl32.Vec3
}

// Environment is the lighting setup passed to the renderer with every
// submitted node. The scene graph never inspects it.
type Environment struct {
	Ambient Color
	Lights  []DirectionalLight
}

// NewEnvironment returns a grey ambient term with a single directional light.
func NewEnvironment() *Environment {
	return &Environment{
		Ambient: Color{0.4, 0.4, 0.4, 1},
		Lights: []DirectionalLight{
			{Color: Color{0.8, 0.8, 0.8, 1}, Direction: mgl32.Vec3{-1, -0.8, -0.2}},
		},
	}
}

// AddLight appends a directional light.
func (e *Environment) AddLight(l DirectionalLight) {
	e.Lights = append(e.Lights, l)
}

// Shade returns the light arriving at a surface with the given world-space
// normal: ambient plus the Lambert term of every light. Alpha is 1.
func (e *Environment) Shade(normal mgl32.Vec3) Color {
	if e == nil {
		return ColorWhite
	}
	out := Color{e.Ambient.R, e.Ambient.G, e.Ambient.B, 1}
	if normal.Dot(normal) == 0 {
		return out
	}
	nrm := normal.Normalize()
	for _, l := range e.Lights {
		if l.Direction.Dot(l.Direction) == 0 {
			continue
		}
		lambert := -nrm.Dot(l.Direction.Normalize())
		if lambert <= 0 {
			continue
		}
		out.R += l.Color.R * lambert
		out.G += l.Color.G * lambert
		out.B += l.Color.B * lambert
	}
	out.R = clamp01(out.R)
	out.G = clamp01(out.G)
	out.B = clamp01(out.B)
	return out
}
