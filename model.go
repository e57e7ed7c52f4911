package willow3d

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Vertex is a single model vertex in local space.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	U, V     float32 // texture coordinates in [0, 1]
	Color    Color
}

// Model is renderable geometry plus its material: a triangle list, an
// optional texture and a base color. Models may be shared between nodes.
type Model struct {
	Vertices []Vertex
	Indices  []uint16
	// Image is sampled with the vertex UVs. Nil means WhitePixel.
	Image *ebiten.Image
	// Color multiplies every vertex color.
	Color Color
	// Unlit skips environment lighting.
	Unlit bool

	ownsImage bool
	disposed  bool
}

// NewModel creates a model from raw geometry.
func NewModel(vertices []Vertex, indices []uint16, img *ebiten.Image) *Model {
	return &Model{Vertices: vertices, Indices: indices, Image: img, Color: ColorWhite}
}

// Bounds returns the local-space box enclosing every vertex.
func (m *Model) Bounds() BoundingBox {
	var b BoundingBox
	for i := range m.Vertices {
		b = b.extend(m.Vertices[i].Position)
	}
	return b
}

// reach returns the largest distance from the local origin to a vertex.
func (m *Model) reach() float32 {
	var r2 float32
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		r2 = max(r2, p.Dot(p))
	}
	return math32.Sqrt(r2)
}

// TriangleCount returns the number of indexed triangles.
func (m *Model) TriangleCount() int {
	return len(m.Indices) / 3
}

// Dispose releases the texture if the model allocated it. Shared textures
// passed to a constructor are left alone.
func (m *Model) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.ownsImage && m.Image != nil {
		m.Image.Deallocate()
	}
	m.Image = nil
	m.Vertices = nil
	m.Indices = nil
}

// IsDisposed reports whether Dispose has been called.
func (m *Model) IsDisposed() bool {
	return m.disposed
}

// texture returns the image to sample, falling back to WhitePixel.
func (m *Model) texture() *ebiten.Image {
	if m.Image == nil {
		return WhitePixel
	}
	return m.Image
}

// --- Builders ---

// appendQuad appends two triangles for the corners a, b, c, d (counter-clockwise)
// with the given normal and vertex color.
func appendQuad(verts []Vertex, inds []uint16, a, b, c, d, normal mgl32.Vec3, col Color) ([]Vertex, []uint16) {
	base := uint16(len(verts))
	verts = append(verts,
		Vertex{Position: a, Normal: normal, U: 0, V: 1, Color: col},
		Vertex{Position: b, Normal: normal, U: 1, V: 1, Color: col},
		Vertex{Position: c, Normal: normal, U: 1, V: 0, Color: col},
		Vertex{Position: d, Normal: normal, U: 0, V: 0, Color: col},
	)
	inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	return verts, inds
}

// appendBox appends the six faces of an axis-aligned box spanning min..max.
func appendBox(verts []Vertex, inds []uint16, min, max mgl32.Vec3, col Color) ([]Vertex, []uint16) {
	x0, y0, z0 := min[0], min[1], min[2]
	x1, y1, z1 := max[0], max[1], max[2]
	// +Z
	verts, inds = appendQuad(verts, inds,
		mgl32.Vec3{x0, y0, z1}, mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x0, y1, z1},
		mgl32.Vec3{0, 0, 1}, col)
	// -Z
	verts, inds = appendQuad(verts, inds,
		mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{x0, y1, z0}, mgl32.Vec3{x1, y1, z0},
		mgl32.Vec3{0, 0, -1}, col)
	// +X
	verts, inds = appendQuad(verts, inds,
		mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x1, y1, z0}, mgl32.Vec3{x1, y1, z1},
		mgl32.Vec3{1, 0, 0}, col)
	// -X
	verts, inds = appendQuad(verts, inds,
		mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{x0, y0, z1}, mgl32.Vec3{x0, y1, z1}, mgl32.Vec3{x0, y1, z0},
		mgl32.Vec3{-1, 0, 0}, col)
	// +Y
	verts, inds = appendQuad(verts, inds,
		mgl32.Vec3{x0, y1, z1}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x1, y1, z0}, mgl32.Vec3{x0, y1, z0},
		mgl32.Vec3{0, 1, 0}, col)
	// -Y
	verts, inds = appendQuad(verts, inds,
		mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x0, y0, z1},
		mgl32.Vec3{0, -1, 0}, col)
	return verts, inds
}

// NewBoxModel creates a box of the given size centered on the origin.
func NewBoxModel(width, height, depth float32, c Color) *Model {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	verts, inds := appendBox(nil, nil, half.Mul(-1), half, ColorWhite)
	m := NewModel(verts, inds, nil)
	m.Color = c
	return m
}

// NewRectModel creates a flat rectangle in the XY plane with its lower-left
// corner at the origin, facing +Z. Shear raises the right edge by the given
// amount, producing a parallelogram. img may be nil for a solid color.
func NewRectModel(width, height, shear float32, c Color, img *ebiten.Image) *Model {
	verts, inds := appendQuad(nil, nil,
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{width, shear, 0},
		mgl32.Vec3{width, height + shear, 0},
		mgl32.Vec3{0, height, 0},
		mgl32.Vec3{0, 0, 1}, ColorWhite)
	m := NewModel(verts, inds, img)
	m.Color = c
	return m
}

var (
	axisColorX = Color{1, 0, 0, 1}
	axisColorY = Color{0, 1, 0, 1}
	axisColorZ = Color{0, 0, 1, 1}
)

// newAxisModel builds the debug gizmo: three thin bars along +X, +Y and +Z
// colored red, green and blue. The model owns its texture so Dispose frees it.
func newAxisModel(length float32) *Model {
	if length < 1 {
		length = 1
	}
	t := length / 40
	var verts []Vertex
	var inds []uint16
	verts, inds = appendBox(verts, inds, mgl32.Vec3{0, -t, -t}, mgl32.Vec3{length, t, t}, axisColorX)
	verts, inds = appendBox(verts, inds, mgl32.Vec3{-t, 0, -t}, mgl32.Vec3{t, length, t}, axisColorY)
	verts, inds = appendBox(verts, inds, mgl32.Vec3{-t, -t, 0}, mgl32.Vec3{t, t, length}, axisColorZ)

	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	m := NewModel(verts, inds, img)
	m.Unlit = true
	m.ownsImage = true
	return m
}
