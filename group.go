package willow3d

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Group is a Node that owns an ordered list of child actors and composes its
// world transform into theirs.
type Group struct {
	Node

	// OnChildrenChanged is called after a child is added or removed.
	OnChildrenChanged func(g *Group)

	children     []Actor
	visibleCount int
}

// NewGroup creates an empty group with no geometry.
func NewGroup(name string) *Group {
	g := &Group{}
	g.Name = name
	nodeDefaults(&g.Node)
	g.self = g
	return g
}

// NewModelGroup creates a group that also renders a model of its own.
func NewModelGroup(name string, m *Model) *Group {
	g := NewGroup(name)
	g.setModel(m)
	return g
}

// AsGroup returns g. It satisfies GroupActor.
func (g *Group) AsGroup() *Group { return g }

// --- Tree manipulation ---

// checkAddable panics if child cannot be attached to g.
func (g *Group) checkAddable(child Actor) *Node {
	if child == nil {
		panic("willow3d: cannot add nil child")
	}
	cn := child.AsNode()
	if cn == nil {
		panic("willow3d: cannot add nil child")
	}
	if g.Node.IsDescendantOf(child) {
		panic("willow3d: adding child would create a cycle")
	}
	if g.stage != nil && g.stage.debug {
		debugCheckDisposed(&g.Node, "AddChild (parent)")
		debugCheckDisposed(cn, "AddChild (child)")
	}
	return cn
}

// AddChild appends child to this group's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is this group or one of its ancestors.
func (g *Group) AddChild(child Actor) {
	cn := g.checkAddable(child)
	cn.Remove()
	g.children = append(g.children[:len(g.children):len(g.children)], child)
	g.attach(child, cn)
}

// AddChildAt inserts child at index.
// Same reparenting and cycle-check behavior as AddChild.
func (g *Group) AddChildAt(child Actor, index int) {
	cn := g.checkAddable(child)
	cn.Remove()
	if index < 0 || index > len(g.children) {
		panic("willow3d: child index out of range")
	}
	next := make([]Actor, 0, len(g.children)+1)
	next = append(next, g.children[:index]...)
	next = append(next, child)
	g.children = append(next, g.children[index:]...)
	g.attach(child, cn)
}

func (g *Group) attach(child Actor, cn *Node) {
	cn.parent = g
	setStageTree(child, g.stage)
	if g.stage != nil && g.stage.debug {
		g.stage.debugCheckTreeDepth(cn)
		g.stage.debugCheckChildCount(g)
	}
	g.childrenChanged()
}

// RemoveChild detaches child. Reports whether it was a child of g.
func (g *Group) RemoveChild(child Actor) bool {
	if child == nil {
		return false
	}
	cn := child.AsNode()
	for i, c := range g.children {
		if c.AsNode() != cn {
			continue
		}
		next := make([]Actor, 0, len(g.children)-1)
		next = append(next, g.children[:i]...)
		g.children = append(next, g.children[i+1:]...)
		cn.parent = nil
		setStageTree(c, nil)
		g.childrenChanged()
		return true
	}
	return false
}

// ClearChildren detaches every child. Children are NOT disposed.
func (g *Group) ClearChildren() {
	old := g.children
	if len(old) == 0 {
		return
	}
	g.children = nil
	for _, c := range old {
		c.AsNode().parent = nil
		setStageTree(c, nil)
	}
	g.childrenChanged()
}

// Clear removes all children, behaviors and listeners.
func (g *Group) Clear() {
	g.ClearChildren()
	g.Node.Clear()
}

func (g *Group) childrenChanged() {
	if g.OnChildrenChanged != nil {
		g.OnChildrenChanged(g)
	}
}

// Children returns the child list. The slice is replaced, never modified, on
// mutation, so it is safe to iterate while the tree changes. It MUST NOT be
// mutated by the caller.
func (g *Group) Children() []Actor {
	return g.children
}

// ChildAt returns the child at index.
func (g *Group) ChildAt(index int) Actor {
	return g.children[index]
}

// NumChildren returns the number of children.
func (g *Group) NumChildren() int {
	return len(g.children)
}

// HasChildren reports whether g has at least one child.
func (g *Group) HasChildren() bool {
	return len(g.children) > 0
}

// IndexOf returns the position of child, or -1.
func (g *Group) IndexOf(child Actor) int {
	if child == nil {
		return -1
	}
	cn := child.AsNode()
	for i, c := range g.children {
		if c.AsNode() == cn {
			return i
		}
	}
	return -1
}

// FindByName returns the first actor named name. Direct children are checked
// before descending into nested groups, which are searched in order.
func (g *Group) FindByName(name string) Actor {
	children := g.children
	for _, c := range children {
		if c.AsNode().Name == name {
			return c
		}
	}
	for _, c := range children {
		if ga, ok := c.(GroupActor); ok {
			if found := ga.AsGroup().FindByName(name); found != nil {
				return found
			}
		}
	}
	return nil
}

// setStageTree assigns s to a and every descendant.
func setStageTree(a Actor, s *Stage) {
	a.AsNode().stage = s
	if ga, ok := a.(GroupActor); ok {
		for _, c := range ga.AsGroup().children {
			setStageTree(c, s)
		}
	}
}

// --- Update ---

// Act steps g's own behaviors, then every child that is still attached.
func (g *Group) Act(dt float32) {
	g.Node.Act(dt)
	for _, c := range g.children {
		cn := c.AsNode()
		if cn.parent != g {
			continue
		}
		actActor(c, dt)
	}
}

// actActor dispatches Act to the group implementation when a is a group.
func actActor(a Actor, dt float32) {
	if ga, ok := a.(GroupActor); ok {
		ga.AsGroup().Act(dt)
		return
	}
	a.AsNode().Act(dt)
}

// --- Draw ---

// drawContext carries the collaborators shared by one draw pass.
type drawContext struct {
	renderer Renderer
	camera   Camera
	env      *Environment
	stats    *frameStats
}

// submitNode culls n against the camera and submits it. n.world must be
// current. Reports whether the node was submitted.
func submitNode(n *Node, ctx *drawContext) bool {
	if !n.hasGeometry() {
		return false
	}
	if !n.inView(ctx.camera) {
		ctx.stats.culled++
		return false
	}
	ctx.renderer.Submit(n, ctx.env)
	ctx.stats.submitted++
	return true
}

// drawChildren composes parentWorld with each visible child's local matrix
// into a temporary, records it as the child's draw transform, submits the
// child and recurses. Culling a node does not prune its children.
func (g *Group) drawChildren(parentWorld mgl32.Mat4, depth int, ctx *drawContext) {
	g.visibleCount = 0
	for _, c := range g.children {
		cn := c.AsNode()
		if !cn.Visible {
			continue
		}
		childWorld := composeWorld(parentWorld, cn.local)
		cn.world = childWorld
		ctx.stats.visited++
		if submitNode(cn, ctx) {
			g.visibleCount++
		}
		if ga, ok := c.(GroupActor); ok {
			if depth+1 > ctx.stats.maxDepth {
				ctx.stats.maxDepth = depth + 1
			}
			ga.AsGroup().drawChildren(childWorld, depth+1, ctx)
		}
	}
}

// VisibleCount returns how many direct children were submitted by the most
// recent draw.
func (g *Group) VisibleCount() int {
	return g.visibleCount
}

// --- Picking ---

// pickChildren tests every visible descendant against ray and keeps the
// nearest hit in best. Earlier nodes win ties.
func (g *Group) pickChildren(parentWorld mgl32.Mat4, ray Ray, best *Hit, found *bool) {
	for _, c := range g.children {
		cn := c.AsNode()
		if !cn.Visible {
			continue
		}
		childWorld := composeWorld(parentWorld, cn.local)
		cn.world = childWorld
		considerHit(c, childWorld, ray, best, found)
		if ga, ok := c.(GroupActor); ok {
			ga.AsGroup().pickChildren(childWorld, ray, best, found)
		}
	}
}

func considerHit(a Actor, world mgl32.Mat4, ray Ray, best *Hit, found *bool) {
	in, ok := a.AsNode().intersectsWorld(world, ray)
	if !ok {
		return
	}
	if !*found || in.Dist2 < best.Dist2 {
		*best = Hit{Actor: a, Intersection: in}
		*found = true
	}
}

// --- Debug ---

// SetDebugVisualization toggles the axis gizmo on g, and on every descendant
// when recursive is true.
func (g *Group) SetDebugVisualization(enabled, recursive bool) {
	g.SetDebug(enabled)
	if !recursive {
		return
	}
	for _, c := range g.children {
		if ga, ok := c.(GroupActor); ok {
			ga.AsGroup().SetDebugVisualization(enabled, true)
			continue
		}
		c.AsNode().SetDebug(enabled)
	}
}

// TreeString returns an indented dump of the subtree rooted at g.
func (g *Group) TreeString() string {
	var sb strings.Builder
	writeTree(&sb, g, 0)
	return sb.String()
}

func writeTree(sb *strings.Builder, a Actor, depth int) {
	n := a.AsNode()
	for i := 0; i < depth; i++ {
		sb.WriteString("|  ")
	}
	sb.WriteString(n.String())
	if !n.Visible {
		sb.WriteString(" (hidden)")
	}
	sb.WriteByte('\n')
	if ga, ok := a.(GroupActor); ok {
		for _, c := range ga.AsGroup().children {
			writeTree(sb, c, depth+1)
		}
	}
}

// --- Disposal ---

// Dispose detaches g and disposes its entire subtree.
func (g *Group) Dispose() {
	if g.disposed {
		return
	}
	g.Remove()
	g.dispose()
}

func (g *Group) dispose() {
	old := g.children
	g.children = nil
	for _, c := range old {
		c.AsNode().parent = nil
		disposeActor(c)
	}
	g.Node.dispose()
}

func disposeActor(a Actor) {
	if ga, ok := a.(GroupActor); ok {
		ga.AsGroup().dispose()
		return
	}
	a.AsNode().dispose()
}

// releaseDebugTree frees debug geometry across the subtree without
// detaching anything.
func releaseDebugTree(a Actor) {
	n := a.AsNode()
	n.debug = false
	n.releaseDebugModel()
	if ga, ok := a.(GroupActor); ok {
		for _, c := range ga.AsGroup().children {
			releaseDebugTree(c)
		}
	}
}
