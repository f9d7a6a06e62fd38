package boardwalk

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recently set Builder debug flag so node-level
// checks can run without a back-pointer to the builder.
var globalDebug bool

// SetDebugMode enables assertions (disposed-node checks, re-entrant store
// write panics) and per-frame stats logging.
func (b *Builder) SetDebugMode(enabled bool) {
	b.debug = enabled
	globalDebug = enabled
}

// debugStats holds per-frame update timing and scene metrics.
// Only populated when Builder.debug is true.
type debugStats struct {
	inputTime     time.Duration
	reconcileTime time.Duration
	updateTime    time.Duration
	nodeCount     int
	dragActive    bool
	gesture       GestureKind
}

func (b *Builder) debugLog(stats debugStats) {
	if !b.debug {
		return
	}
	total := stats.inputTime + stats.reconcileTime + stats.updateTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[boardwalk] input: %v | reconcile: %v | update: %v | total: %v\n",
		stats.inputTime, stats.reconcileTime, stats.updateTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[boardwalk] nodes: %d | gesture: %d | dragging: %v\n",
		stats.nodeCount, stats.gesture, stats.dragActive)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Callers gate on globalDebug.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("boardwalk debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

func countNodes(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.children {
		total += countNodes(c)
	}
	return total
}
