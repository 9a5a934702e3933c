package qubobb

import (
	"fmt"
	"io"
)

// Middleware is an observability sink for the search: it is told about
// every node as it is created (by branching) and as it is solved. It
// must not influence the search itself; implementations exist purely
// to let a caller inspect the run after the fact, never storing a
// reference back into solver state.
type Middleware interface {
	// NodeCreated is called once per child node, right after branching
	// produces it and before it is pushed onto the stack.
	NodeCreated(Node)

	// NodeSolved is called once the QP oracle has returned a bound and
	// primal point for a node that was not pruned on sight.
	NodeSolved(node Node, lowerBound float64, primal []float64)
}

type dummyMiddleware struct{}

func (dummyMiddleware) NodeCreated(Node)                    {}
func (dummyMiddleware) NodeSolved(Node, float64, []float64) {}

// TreeLogger is an optional Middleware that records every node seen
// during a run well enough to export it as a Graphviz DOT file
// afterward. Each logged node carries its fixed-variable count and
// relaxed bound.
type TreeLogger struct {
	nextID int
	nodes  []*treeNode
}

type treeNode struct {
	id         int
	lowerBound float64
	numFixed   int
	solved     bool
}

// NewTreeLogger returns an empty TreeLogger.
func NewTreeLogger() *TreeLogger {
	return &TreeLogger{}
}

func (t *TreeLogger) NodeCreated(n Node) {
	t.nodes = append(t.nodes, &treeNode{
		id:         t.nextID,
		lowerBound: n.lowerBound,
		numFixed:   len(n.fixed),
	})
	t.nextID++
}

func (t *TreeLogger) NodeSolved(n Node, lowerBound float64, primal []float64) {
	if len(t.nodes) == 0 {
		return
	}
	last := t.nodes[len(t.nodes)-1]
	last.lowerBound = lowerBound
	last.solved = true
}

// ToDOT writes a Graphviz DOT-file visualisation of the nodes recorded
// so far. This is a diagnostic only: it plays no part in pruning or
// branching.
func (t *TreeLogger) ToDOT(out io.Writer) {
	writeRow := func(r string, args ...interface{}) {
		if len(args) > 0 {
			fmt.Fprintf(out, r, args...)
		} else {
			io.WriteString(out, r)
		}
		io.WriteString(out, "\n")
	}

	writeRow("digraph enumtree {")
	writeRow("node [fontname=Courier,shape=rectangle];")
	writeRow("edge [color=Blue, style=dashed];")

	for _, n := range t.nodes {
		color := "Pink"
		label := "unsolved"
		if n.solved {
			color = "Black"
			label = fmt.Sprintf("<lb=%.2f <BR /> id:%d <BR /> fixed:%d>", n.lowerBound, n.id, n.numFixed)
		}
		writeRow("%d [label=%v,color=%v];", n.id, label, color)
	}

	writeRow("}")
}
