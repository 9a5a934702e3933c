package qubobb

import "math"

// Node is one entry in the branch-and-bound search tree.
//
// lowerBound is inherited from the parent's QP solve and is only a
// valid bound for pruning this node before it is itself solved;
// solution is the parent's relaxed primal point, handed to the
// branching heuristic operating on this node.
type Node struct {
	lowerBound float64
	solution   []float64
	fixed      Fixing
}

// newRootNode builds the root of the search tree: an unbounded lower
// bound, a zero relaxed solution, and the root persistence computed
// from the empty fixing.
func newRootNode(n int, rootPersistence Fixing) Node {
	return Node{
		lowerBound: math.Inf(-1),
		solution:   make([]float64, n),
		fixed:      rootPersistence,
	}
}

// isLeaf reports whether every variable has been fixed.
func (nd Node) isLeaf(n int) bool {
	return nd.fixed.complete(n)
}

// nodeStack is a LIFO container of pending nodes. Depth-first search
// bounds memory to O(n^2) nodes in flight and tends to find feasible
// incumbents early, which tightens pruning sooner than a best-first
// queue would.
type nodeStack struct {
	items []Node
}

func (s *nodeStack) push(n Node) {
	s.items = append(s.items, n)
}

// pop removes and returns the most recently pushed node. The second
// return value is false when the stack is empty.
func (s *nodeStack) pop() (Node, bool) {
	if len(s.items) == 0 {
		return Node{}, false
	}
	last := len(s.items) - 1
	n := s.items[last]
	s.items = s.items[:last]
	return n, true
}

func (s *nodeStack) empty() bool {
	return len(s.items) == 0
}

func (s *nodeStack) len() int {
	return len(s.items)
}
