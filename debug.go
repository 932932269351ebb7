package chart

import (
	"fmt"
	"log/slog"
)

// renderStats counts how one render pass classified its records.
type renderStats struct {
	chart  string
	enter  int
	update int
	exit   int
}

func (st *renderStats) add(r joinResult) {
	st.enter += len(r.Enter)
	st.update += len(r.Update)
	st.exit += len(r.Exit)
}

// log writes the pass summary at debug level.
func (st renderStats) log(attrs ...any) {
	l := Logger()
	args := append([]any{"chart", st.chart, "enter", st.enter, "update", st.update, "exit", st.exit}, attrs...)
	l.Debug("chart: render", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("chart debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("chart: tree depth exceeds threshold",
			slog.Int("depth", depth), slog.Int("threshold", debugMaxTreeDepth), slog.String("node", n.Name))
	}
}

const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("chart: child count exceeds threshold",
			slog.Int("children", len(n.children)), slog.Int("threshold", debugMaxChildCount), slog.String("node", n.Name))
	}
}
