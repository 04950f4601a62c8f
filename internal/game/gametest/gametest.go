// Package gametest provides synthetic game trees implementing game.State, to test
// searchers against known values.
package gametest

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/game"
)

// Visit records an expansion of a node: which agent was asked for its legal actions at
// which ply (distance from the root).
type Visit struct {
	Ply, Agent int
}

// Trace collects the visits and evaluations done in a tree. It is shared by all nodes
// of the same tree.
type Trace struct {
	Visits []Visit

	// Evaluated holds the plies of the nodes passed to the Evaluate function.
	Evaluated []int
}

// Node of a synthetic tree. A node has one action per child, named "a0", "a1", ...
// The same tree is used regardless of which agent is acting.
type Node struct {
	Value    float32
	Children []*Node
	Win      bool
	Lose     bool

	// Ply is set by NewTree.
	Ply int

	numAgents int
	actions   []game.Action
	trace     *Trace
}

// Assert Node is a game.State.
var _ game.State = (*Node)(nil)

// Leaf returns a node without children with the given value.
func Leaf(value float32) *Node {
	return &Node{Value: value}
}

// Leaves returns one leaf per value.
func Leaves(values ...float32) []*Node {
	nodes := make([]*Node, len(values))
	for ii, v := range values {
		nodes[ii] = Leaf(v)
	}
	return nodes
}

// Branch returns an interior node with the given children.
func Branch(children ...*Node) *Node {
	return &Node{Children: children}
}

// NewTree finalizes the tree rooted at root, for a game of numAgents agents, and returns
// the root and the trace shared by its nodes.
func NewTree(numAgents int, root *Node) (*Node, *Trace) {
	if numAgents < 1 {
		exceptions.Panicf("gametest: invalid numAgents=%d", numAgents)
	}
	trace := &Trace{}
	var finalize func(n *Node, ply int)
	finalize = func(n *Node, ply int) {
		n.Ply = ply
		n.numAgents = numAgents
		n.trace = trace
		n.actions = make([]game.Action, len(n.Children))
		for ii, child := range n.Children {
			n.actions[ii] = game.Action(fmt.Sprintf("a%d", ii))
			finalize(child, ply+1)
		}
	}
	finalize(root, 0)
	return root, trace
}

// Uniform builds a complete tree with the given branching factor and number of plies.
// Leaves are valued by valueFn, called with the leaf index in depth-first order.
func Uniform(numAgents, branching, plies int, valueFn func(leafIdx int) float32) (*Node, *Trace) {
	leafIdx := 0
	var build func(ply int) *Node
	build = func(ply int) *Node {
		if ply == plies {
			n := Leaf(valueFn(leafIdx))
			leafIdx++
			return n
		}
		n := &Node{Children: make([]*Node, branching)}
		for ii := range n.Children {
			n.Children[ii] = build(ply + 1)
		}
		return n
	}
	return NewTree(numAgents, build(0))
}

// LegalActions implements game.State. It records the visit in the trace.
func (n *Node) LegalActions(agent int) []game.Action {
	n.trace.Visits = append(n.trace.Visits, Visit{Ply: n.Ply, Agent: agent})
	if n.Win || n.Lose {
		return nil
	}
	return n.actions
}

// Successor implements game.State.
func (n *Node) Successor(agent int, action game.Action) game.State {
	for ii, a := range n.actions {
		if a == action {
			return n.Children[ii]
		}
	}
	exceptions.Panicf("gametest: action %q not available at ply %d (agent %d)", action, n.Ply, agent)
	return nil
}

// IsWin implements game.State.
func (n *Node) IsWin() bool { return n.Win }

// IsLose implements game.State.
func (n *Node) IsLose() bool { return n.Lose }

// NumAgents implements game.State.
func (n *Node) NumAgents() int { return n.numAgents }

// Score implements game.State, and returns the node's Value.
func (n *Node) Score() float32 { return n.Value }

// Evaluate can be used as an evaluator: it returns the node value and records the
// evaluation in the trace.
func Evaluate(s game.State) float32 {
	n := s.(*Node)
	n.trace.Evaluated = append(n.trace.Evaluated, n.Ply)
	return n.Value
}

// Classic returns the textbook 2-agent tree: a max root with three min children, each
// with three leaves valued [3, 12, 8], [2, 4, 6], [14, 5, 2]. Its minimax value is 3,
// reached by action "a0".
func Classic() (*Node, *Trace) {
	return NewTree(2, Branch(
		Branch(Leaves(3, 12, 8)...),
		Branch(Leaves(2, 4, 6)...),
		Branch(Leaves(14, 5, 2)...),
	))
}
