package willow3d

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer receives the nodes that survive culling during Stage.Draw.
// Submit is called between BeginBatch and EndBatch with the node's
// DrawTransform already current.
type Renderer interface {
	BeginBatch(cam Camera)
	Submit(n *Node, env *Environment)
	EndBatch()
}

// ProjectionCamera is a Camera that exposes its clip-space transform.
// EbitenRenderer needs it to project vertices.
type ProjectionCamera interface {
	Camera
	Combined() mgl32.Mat4
	ViewportSize() (width, height float32)
}

// ViewportSize returns the screen size in pixels.
func (c *PerspectiveCamera) ViewportSize() (width, height float32) {
	return c.ViewportWidth, c.ViewportHeight
}

// RenderStats describes the most recent batch.
type RenderStats struct {
	Nodes     int // nodes submitted
	Triangles int // triangles drawn
	Clipped   int // triangles dropped for crossing the near plane
	DrawCalls int // DrawTriangles32 calls issued
}

// minClipW drops triangles at or behind the eye.
const minClipW = 1e-4

// projectedTriangle is one triangle in screen space, kept until EndBatch
// so the batch can be depth sorted.
type projectedTriangle struct {
	verts [3]ebiten.Vertex
	depth float32
	image *ebiten.Image
}

// EbitenRenderer is a software-projection renderer that draws models onto an
// ebiten image with DrawTriangles32. Triangles are lit per vertex from the
// environment, sorted back to front and batched by texture.
type EbitenRenderer struct {
	// Target receives the frame. Nil discards everything.
	Target *ebiten.Image

	viewProj mgl32.Mat4
	width    float32
	height   float32
	active   bool

	tris  []projectedTriangle
	verts []ebiten.Vertex
	inds  []uint32
	stats RenderStats
}

// NewEbitenRenderer creates a renderer drawing to target.
func NewEbitenRenderer(target *ebiten.Image) *EbitenRenderer {
	return &EbitenRenderer{Target: target}
}

// SetTarget changes the destination image.
func (r *EbitenRenderer) SetTarget(target *ebiten.Image) {
	r.Target = target
}

// Stats returns counters for the last completed batch.
func (r *EbitenRenderer) Stats() RenderStats {
	return r.stats
}

// BeginBatch captures the camera transform. Cameras that do not implement
// ProjectionCamera produce an empty batch.
func (r *EbitenRenderer) BeginBatch(cam Camera) {
	r.tris = r.tris[:0]
	r.stats = RenderStats{}
	pc, ok := cam.(ProjectionCamera)
	if !ok {
		r.active = false
		return
	}
	r.active = true
	r.viewProj = pc.Combined()
	r.width, r.height = pc.ViewportSize()
}

// Submit projects the node's model and debug gizmo.
func (r *EbitenRenderer) Submit(n *Node, env *Environment) {
	if !r.active {
		return
	}
	r.stats.Nodes++
	world := n.DrawTransform()
	if n.model != nil && !n.model.disposed {
		r.projectModel(n.model, world, n.Color, env)
	}
	if n.debugModel != nil {
		r.projectModel(n.debugModel, world, ColorWhite, env)
	}
}

// normalMatrix returns the inverse transpose of the upper 3x3 of world, or
// the plain 3x3 when it is singular.
func normalMatrix(world mgl32.Mat4) mgl32.Mat3 {
	m := world.Mat3()
	if m.Det() == 0 {
		return m
	}
	return m.Inv().Transpose()
}

func (r *EbitenRenderer) projectModel(m *Model, world mgl32.Mat4, tint Color, env *Environment) {
	mvp := r.viewProj.Mul4(world)
	nm := normalMatrix(world)
	img := m.texture()
	b := img.Bounds()
	iw, ih := float32(b.Dx()), float32(b.Dy())
	base := m.Color.Mul(tint)

	for i := 0; i+2 < len(m.Indices); i += 3 {
		var tri projectedTriangle
		tri.image = img
		clipped := false
		for k := 0; k < 3; k++ {
			idx := int(m.Indices[i+k])
			if idx >= len(m.Vertices) {
				clipped = true
				break
			}
			v := &m.Vertices[idx]
			clip := mvp.Mul4x1(v.Position.Vec4(1))
			if clip[3] <= minClipW {
				clipped = true
				break
			}
			inv := 1 / clip[3]
			sx := (clip[0]*inv + 1) / 2 * r.width
			sy := (1 - clip[1]*inv) / 2 * r.height

			col := v.Color.Mul(base)
			if !m.Unlit {
				light := env.Shade(nm.Mul3x1(v.Normal))
				col = col.Mul(light)
			}
			a := clamp01(col.A)
			tri.verts[k] = ebiten.Vertex{
				DstX:   sx,
				DstY:   sy,
				SrcX:   v.U * iw,
				SrcY:   v.V * ih,
				ColorR: clamp01(col.R) * a,
				ColorG: clamp01(col.G) * a,
				ColorB: clamp01(col.B) * a,
				ColorA: a,
			}
			tri.depth += clip[3]
		}
		if clipped {
			r.stats.Clipped++
			continue
		}
		tri.depth /= 3
		r.tris = append(r.tris, tri)
	}
}

// EndBatch sorts the collected triangles back to front and draws them,
// coalescing runs that share a texture into one call.
func (r *EbitenRenderer) EndBatch() {
	if !r.active {
		return
	}
	r.active = false
	sort.SliceStable(r.tris, func(i, j int) bool {
		return r.tris[i].depth > r.tris[j].depth
	})
	r.stats.Triangles = len(r.tris)
	if r.Target == nil {
		return
	}

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	var current *ebiten.Image
	for i := range r.tris {
		t := &r.tris[i]
		if t.image != current {
			r.flush(current)
			current = t.image
		}
		base := uint32(len(r.verts))
		r.verts = append(r.verts, t.verts[0], t.verts[1], t.verts[2])
		r.inds = append(r.inds, base, base+1, base+2)
	}
	r.flush(current)
}

// flush submits accumulated vertices as a single DrawTriangles32 call.
func (r *EbitenRenderer) flush(img *ebiten.Image) {
	if len(r.verts) == 0 || img == nil {
		r.verts = r.verts[:0]
		r.inds = r.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	r.Target.DrawTriangles32(r.verts, r.inds, img, &op)
	r.stats.DrawCalls++
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}
