package willow3d

import (
	"fmt"
	"log/slog"
	"time"
)

// frameStats holds per-frame traversal metrics. Only logged when the stage
// is in debug mode.
type frameStats struct {
	traverseTime time.Duration
	batchTime    time.Duration
	visited      int
	submitted    int
	culled       int
	maxDepth     int
}

// debugLog writes the frame stats at debug level.
func (s *Stage) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	attrs := []any{
		slog.Duration("traverse", stats.traverseTime),
		slog.Duration("batch", stats.batchTime),
		slog.Int("visited", stats.visited),
		slog.Int("submitted", stats.submitted),
		slog.Int("culled", stats.culled),
		slog.Int("depth", stats.maxDepth),
	}
	if er, ok := s.renderer.(*EbitenRenderer); ok {
		rs := er.Stats()
		attrs = append(attrs,
			slog.Int("triangles", rs.Triangles),
			slog.Int("clipped", rs.Clipped),
			slog.Int("drawCalls", rs.DrawCalls))
	}
	s.logger().Debug("[willow3d] frame", attrs...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("willow3d debug: %s on disposed node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugMaxTreeDepth is the depth above which attaching a node logs a warning.
const debugMaxTreeDepth = 32

func (s *Stage) debugCheckTreeDepth(n *Node) {
	if depth := n.Depth(); depth > debugMaxTreeDepth {
		s.logger().Warn("[willow3d] tree depth exceeds threshold",
			"node", n.String(), "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func (s *Stage) debugCheckChildCount(g *Group) {
	if c := len(g.children); c > debugMaxChildCount {
		s.logger().Warn("[willow3d] child count exceeds threshold",
			"node", g.String(), "children", c, "threshold", debugMaxChildCount)
	}
}
