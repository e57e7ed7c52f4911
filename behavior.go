package willow3d

// Behavior is a time-stepped mutation attached to at most one node.
//
// Act advances the behavior by dt seconds and reports whether it has
// finished. A finished behavior is removed from its node by Node.Act.
// Restart rewinds internal progress so the behavior can run again.
//
// Implementations embed BehaviorBase, which carries the owner reference.
type Behavior interface {
	Act(dt float32) bool
	Restart()
	Node() *Node
	Composite() Behavior
	setNode(n *Node)
	setComposite(c Behavior)
}

// BehaviorBase holds the owner back-reference and, for behaviors nested in
// Delay, Sequence, Parallel or Repeat, the composite that steps them. Only
// Node and the composite constructors change them.
type BehaviorBase struct {
	node      *Node
	composite Behavior
}

// Node returns the node the behavior acts on, or nil while detached. For a
// nested behavior this is the owner of its outermost composite; the nested
// behavior itself is not in that node's behavior list.
func (b *BehaviorBase) Node() *Node { return b.node }

// Composite returns the composite behavior that steps b, or nil when b is
// attached to a node directly.
func (b *BehaviorBase) Composite() Behavior { return b.composite }

func (b *BehaviorBase) setNode(n *Node) { b.node = n }

func (b *BehaviorBase) setComposite(c Behavior) { b.composite = c }

// adopt makes parent the composite of child. A behavior can be nested in
// one composite only, and never while it is attached to a node.
func adopt(parent, child Behavior) {
	if child == nil {
		panic("willow3d: cannot add nil behavior")
	}
	if child.Composite() != nil {
		panic("willow3d: behavior already belongs to a composite")
	}
	if child.Node() != nil {
		panic("willow3d: behavior is attached to a node")
	}
	child.setComposite(parent)
}

// --- Do ---

// DoBehavior calls a function once and finishes.
type DoBehavior struct {
	BehaviorBase
	fn  func(n *Node)
	ran bool
}

// Do returns a behavior that calls fn with the owning node on its first step.
func Do(fn func(n *Node)) *DoBehavior {
	return &DoBehavior{fn: fn}
}

// Act implements Behavior.
func (r *DoBehavior) Act(float32) bool {
	if r.node == nil {
		return false
	}
	if !r.ran {
		r.ran = true
		if r.fn != nil {
			r.fn(r.node)
		}
	}
	return true
}

// Restart implements Behavior.
func (r *DoBehavior) Restart() { r.ran = false }

// --- Func ---

// FuncBehavior runs a function every step until it reports done.
type FuncBehavior struct {
	BehaviorBase
	fn func(n *Node, dt float32) bool
}

// Func returns a behavior that calls fn each step and finishes when fn
// returns true.
func Func(fn func(n *Node, dt float32) bool) *FuncBehavior {
	return &FuncBehavior{fn: fn}
}

// Act implements Behavior.
func (f *FuncBehavior) Act(dt float32) bool {
	if f.node == nil {
		return false
	}
	if f.fn == nil {
		return true
	}
	return f.fn(f.node, dt)
}

// Restart implements Behavior.
func (f *FuncBehavior) Restart() {}

// --- Delay ---

// DelayBehavior waits for a duration, then optionally runs a wrapped behavior.
type DelayBehavior struct {
	BehaviorBase
	Duration float32
	elapsed  float32
	inner    Behavior
}

// Delay returns a behavior that finishes after seconds have elapsed. If then
// is non-nil it is stepped after the wait and the delay finishes with it.
func Delay(seconds float32, then Behavior) *DelayBehavior {
	d := &DelayBehavior{Duration: seconds, inner: then}
	if then != nil {
		adopt(d, then)
	}
	return d
}

// Act implements Behavior.
func (d *DelayBehavior) Act(dt float32) bool {
	if d.node == nil {
		return false
	}
	if d.elapsed < d.Duration {
		d.elapsed += dt
		if d.elapsed < d.Duration {
			return false
		}
		dt = d.elapsed - d.Duration
	}
	if d.inner == nil {
		return true
	}
	return d.inner.Act(dt)
}

// Restart implements Behavior.
func (d *DelayBehavior) Restart() {
	d.elapsed = 0
	if d.inner != nil {
		d.inner.Restart()
	}
}

func (d *DelayBehavior) setNode(n *Node) {
	d.node = n
	if d.inner != nil {
		d.inner.setNode(n)
	}
}

// --- Sequence ---

// SequenceBehavior runs behaviors one after another.
type SequenceBehavior struct {
	BehaviorBase
	steps   []Behavior
	current int
}

// Sequence returns a behavior that runs each step to completion in order.
// Panics if a step is nil, nested elsewhere or attached to a node.
func Sequence(steps ...Behavior) *SequenceBehavior {
	s := &SequenceBehavior{steps: steps}
	for _, b := range steps {
		adopt(s, b)
	}
	return s
}

// Act implements Behavior.
func (s *SequenceBehavior) Act(dt float32) bool {
	if s.node == nil {
		return false
	}
	for s.current < len(s.steps) {
		if !s.steps[s.current].Act(dt) {
			return false
		}
		// Detached by the step itself (e.g. RemoveActor on the owner).
		if s.node == nil {
			return true
		}
		s.current++
		dt = 0
	}
	return true
}

// Restart implements Behavior.
func (s *SequenceBehavior) Restart() {
	s.current = 0
	for _, b := range s.steps {
		b.Restart()
	}
}

func (s *SequenceBehavior) setNode(n *Node) {
	s.node = n
	for _, b := range s.steps {
		b.setNode(n)
	}
}

// --- Parallel ---

// ParallelBehavior runs behaviors at the same time and finishes when all have.
type ParallelBehavior struct {
	BehaviorBase
	steps []Behavior
	done  []bool
}

// Parallel returns a behavior that steps every child each frame.
// Panics if a step is nil, nested elsewhere or attached to a node.
func Parallel(steps ...Behavior) *ParallelBehavior {
	p := &ParallelBehavior{steps: steps, done: make([]bool, len(steps))}
	for _, b := range steps {
		adopt(p, b)
	}
	return p
}

// Act implements Behavior.
func (p *ParallelBehavior) Act(dt float32) bool {
	if p.node == nil {
		return false
	}
	all := true
	for i, b := range p.steps {
		if p.done[i] {
			continue
		}
		if b.Act(dt) {
			p.done[i] = true
		} else {
			all = false
		}
		if p.node == nil {
			return true
		}
	}
	return all
}

// Restart implements Behavior.
func (p *ParallelBehavior) Restart() {
	for i, b := range p.steps {
		p.done[i] = false
		b.Restart()
	}
}

func (p *ParallelBehavior) setNode(n *Node) {
	p.node = n
	for _, b := range p.steps {
		b.setNode(n)
	}
}

// --- Repeat ---

// RepeatBehavior restarts a behavior a fixed number of times.
type RepeatBehavior struct {
	BehaviorBase
	inner Behavior
	Count int
	runs  int
}

// Repeat returns a behavior that runs inner to completion count times.
// Panics if inner is nil, nested elsewhere or attached to a node.
func Repeat(count int, inner Behavior) *RepeatBehavior {
	r := &RepeatBehavior{inner: inner, Count: count}
	adopt(r, inner)
	return r
}

// Forever returns a behavior that restarts inner each time it completes and
// never finishes.
func Forever(inner Behavior) *RepeatBehavior {
	return Repeat(-1, inner)
}

// Act implements Behavior.
func (r *RepeatBehavior) Act(dt float32) bool {
	if r.node == nil {
		return false
	}
	if r.Count >= 0 && r.runs >= r.Count {
		return true
	}
	if !r.inner.Act(dt) {
		return false
	}
	r.runs++
	if r.Count >= 0 && r.runs >= r.Count {
		return true
	}
	r.inner.Restart()
	return false
}

// Restart implements Behavior.
func (r *RepeatBehavior) Restart() {
	r.runs = 0
	r.inner.Restart()
}

func (r *RepeatBehavior) setNode(n *Node) {
	r.node = n
	r.inner.setNode(n)
}

// --- Visibility and removal ---

// Show returns a behavior that makes its node visible and finishes.
func Show() *DoBehavior {
	return Do(func(n *Node) { n.Visible = true })
}

// Hide returns a behavior that hides its node and finishes.
func Hide() *DoBehavior {
	return Do(func(n *Node) { n.Visible = false })
}

// RemoveActor returns a behavior that detaches its node from the parent.
func RemoveActor() *DoBehavior {
	return Do(func(n *Node) { n.Remove() })
}
