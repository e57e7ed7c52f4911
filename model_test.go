package willow3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewBoxModel(t *testing.T) {
	c := Color{R: 0.5, G: 0.25, B: 1, A: 1}
	m := NewBoxModel(2, 4, 6, c)
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Errorf("vertices/indices = %d/%d, want 24/36", len(m.Vertices), len(m.Indices))
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", m.TriangleCount())
	}
	if m.Color != c {
		t.Errorf("Color = %v, want %v", m.Color, c)
	}
	b := m.Bounds()
	if b.Min != (mgl32.Vec3{-1, -2, -3}) || b.Max != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Bounds = %v..%v", b.Min, b.Max)
	}
}

func TestBoxModelNormalsPointOutward(t *testing.T) {
	m := NewBoxModel(2, 2, 2, ColorWhite)
	for i, v := range m.Vertices {
		if v.Normal.Dot(v.Position) <= 0 {
			t.Errorf("vertex %d normal %v points inward at %v", i, v.Normal, v.Position)
		}
	}
}

func TestNewRectModelShear(t *testing.T) {
	m := NewRectModel(4, 2, 1, ColorWhite, nil)
	b := m.Bounds()
	if b.Min != (mgl32.Vec3{0, 0, 0}) || b.Max != (mgl32.Vec3{4, 3, 0}) {
		t.Errorf("Bounds = %v..%v, want [0 0 0]..[4 3 0]", b.Min, b.Max)
	}
	if m.texture() != WhitePixel {
		t.Error("untextured model should sample WhitePixel")
	}
}

func TestModelDispose(t *testing.T) {
	m := NewBoxModel(1, 1, 1, ColorWhite)
	m.Dispose()
	if !m.IsDisposed() || m.Vertices != nil || m.Indices != nil {
		t.Error("Dispose should drop geometry")
	}
	m.Dispose()
}

func TestAxisModel(t *testing.T) {
	m := newAxisModel(0.2)
	if !m.Unlit || !m.ownsImage {
		t.Error("axis model should be unlit and own its image")
	}
	if m.Bounds().Max[0] != 1 {
		t.Errorf("axis length = %v, want clamped to 1", m.Bounds().Max[0])
	}
	if m.TriangleCount() != 36 {
		t.Errorf("TriangleCount = %d, want 36", m.TriangleCount())
	}
	m.Dispose()
	if m.Image != nil {
		t.Error("owned image should be released")
	}
}
