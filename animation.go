package willow3d

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup is a behavior that animates up to 4 float32 properties of its
// node simultaneously. Start values are captured from the node on the first
// step after attachment, so a tween can be built before it has an owner.
// It makes no progress while detached.
type TweenGroup struct {
	BehaviorBase
	Duration float32
	Ease     ease.TweenFunc

	capture func(n *Node) (from, to [4]float32)
	apply   func(n *Node, vals [4]float32)
	count   int
	tweens  [4]*gween.Tween
	started bool
}

func newTweenGroup(count int, duration float32, fn ease.TweenFunc,
	capture func(n *Node) (from, to [4]float32), apply func(n *Node, vals [4]float32)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	return &TweenGroup{
		Duration: duration,
		Ease:     fn,
		capture:  capture,
		apply:    apply,
		count:    count,
	}
}

// Act advances all tweens by dt seconds and writes the values to the node.
func (g *TweenGroup) Act(dt float32) bool {
	n := g.node
	if n == nil {
		return false
	}
	if n.disposed {
		return true
	}
	if !g.started {
		g.started = true
		from, to := g.capture(n)
		if g.Duration <= 0 {
			g.apply(n, to)
			return true
		}
		for i := 0; i < g.count; i++ {
			g.tweens[i] = gween.New(from[i], to[i], g.Duration, g.Ease)
		}
	}

	var vals [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(n, vals)
	return allDone
}

// Restart discards progress. Start values are captured again on the next step.
func (g *TweenGroup) Restart() {
	g.started = false
}

// MoveTo animates the node's local position to (x, y, z).
func MoveTo(x, y, z, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(3, duration, fn,
		func(n *Node) (from, to [4]float32) {
			return [4]float32{n.x, n.y, n.z}, [4]float32{x, y, z}
		},
		applyPosition)
}

// MoveBy animates the node's local position by (dx, dy, dz) relative to
// where it is when the tween starts.
func MoveBy(dx, dy, dz, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(3, duration, fn,
		func(n *Node) (from, to [4]float32) {
			return [4]float32{n.x, n.y, n.z}, [4]float32{n.x + dx, n.y + dy, n.z + dz}
		},
		applyPosition)
}

// RotateTo animates yaw, pitch and roll to the given angles in degrees.
func RotateTo(yaw, pitch, roll, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(3, duration, fn,
		func(n *Node) (from, to [4]float32) {
			return [4]float32{n.yaw, n.pitch, n.roll}, [4]float32{yaw, pitch, roll}
		},
		applyRotation)
}

// RotateBy animates yaw, pitch and roll by the given amounts in degrees.
func RotateBy(dyaw, dpitch, droll, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(3, duration, fn,
		func(n *Node) (from, to [4]float32) {
			return [4]float32{n.yaw, n.pitch, n.roll},
				[4]float32{n.yaw + dyaw, n.pitch + dpitch, n.roll + droll}
		},
		applyRotation)
}

// ScaleTo animates the per-axis scale to (sx, sy, sz).
func ScaleTo(sx, sy, sz, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(3, duration, fn,
		func(n *Node) (from, to [4]float32) {
			return [4]float32{n.scaleX, n.scaleY, n.scaleZ}, [4]float32{sx, sy, sz}
		},
		func(n *Node, v [4]float32) { n.SetScale(v[0], v[1], v[2]) })
}

// ColorTo animates all four components of the node's tint.
func ColorTo(c Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(4, duration, fn,
		func(n *Node) (from, to [4]float32) {
			return [4]float32{n.Color.R, n.Color.G, n.Color.B, n.Color.A},
				[4]float32{c.R, c.G, c.B, c.A}
		},
		func(n *Node, v [4]float32) { n.Color = Color{v[0], v[1], v[2], v[3]} })
}

func applyPosition(n *Node, v [4]float32) {
	n.SetPosition(v[0], v[1], v[2])
}

func applyRotation(n *Node, v [4]float32) {
	n.SetRotation(v[0], v[1], v[2])
}
