package minimax_test

import (
	"github.com/chewxy/math32"
	"github.com/janpfeifer/pacmanGo/internal/evaluators"
	"github.com/janpfeifer/pacmanGo/internal/game"
	. "github.com/janpfeifer/pacmanGo/internal/game/gametest"
	"github.com/janpfeifer/pacmanGo/internal/maze"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/janpfeifer/pacmanGo/internal/searchers/minimax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
	"testing"
)

func init() {
	klog.InitFlags(nil)
}

func TestClassicTree(t *testing.T) {
	root, trace := Classic()
	s := minimax.New(Evaluate).WithMaxDepth(1)
	action, score := s.Search(root)
	assert.Equal(t, game.Action("a0"), action)
	assert.Equal(t, float32(3), score)
	assert.Equal(t, searchers.Stats{Nodes: 13, Evals: 9}, s.Stats())
	assert.Len(t, trace.Evaluated, 9)

	// Stats are reset at every search.
	s.Search(root)
	assert.Equal(t, 13, s.Stats().Nodes)
}

func TestRoundRobin(t *testing.T) {
	const numAgents = 3
	for _, maxDepth := range []int{0, 1, 2} {
		root, trace := Uniform(numAgents, 2, 6, func(leafIdx int) float32 { return float32(leafIdx % 5) })
		minimax.New(Evaluate).WithMaxDepth(maxDepth).Search(root)
		for _, visit := range trace.Visits {
			require.Equalf(t, visit.Ply%numAgents, visit.Agent, "maxDepth=%d, visit=%+v", maxDepth, visit)
		}
		// Evaluations happen only at the cutoff.
		require.NotEmpty(t, trace.Evaluated)
		for _, ply := range trace.Evaluated {
			require.Equalf(t, maxDepth*numAgents, ply, "maxDepth=%d", maxDepth)
		}
	}
}

func TestTies(t *testing.T) {
	// The first action with the max value is taken.
	root, _ := NewTree(2, Branch(
		Branch(Leaf(1)),
		Branch(Leaf(1)),
		Branch(Leaf(2), Leaf(4)),
		Branch(Leaf(2)),
	))
	action, score := minimax.New(Evaluate).WithMaxDepth(1).Search(root)
	assert.Equal(t, game.Action("a2"), action)
	assert.Equal(t, float32(2), score)

	// Even if all actions lead to a certain loss.
	root, _ = NewTree(2, Branch(
		Branch(Leaf(math32.Inf(-1)), &Node{Lose: true, Value: math32.Inf(-1)}),
		Branch(Leaf(math32.Inf(-1))),
	))
	action, _ = minimax.New(Evaluate).WithMaxDepth(1).Search(root)
	assert.Equal(t, game.Action("a0"), action)
}

func TestLeaves(t *testing.T) {
	// No legal actions.
	root, _ := NewTree(2, Leaf(7))
	action, score := minimax.New(Evaluate).Search(root)
	assert.Equal(t, game.NoAction, action)
	assert.Equal(t, float32(7), score)

	// Terminal states are not expanded.
	root, _ = NewTree(2, &Node{Win: true, Value: 11, Children: Leaves(1, 2)})
	action, score = minimax.New(Evaluate).Search(root)
	assert.Equal(t, game.NoAction, action)
	assert.Equal(t, float32(11), score)

	// A ghost without actions is evaluated where it is, without advancing the depth.
	root, trace := NewTree(2, Branch(
		Leaf(5),
		Branch(Leaf(1)),
	))
	s := minimax.New(Evaluate).WithMaxDepth(2)
	action, score = s.Search(root)
	assert.Equal(t, game.Action("a0"), action)
	assert.Equal(t, float32(5), score)
	assert.Equal(t, []int{1, 2}, trace.Evaluated)
}

func TestMultipleGhosts(t *testing.T) {
	// 3 agents: Pacman and 2 ghosts, both minimizing.
	root, _ := NewTree(3, Branch(
		Branch(Branch(Leaves(8, 9)...), Branch(Leaf(6))),
		Branch(Branch(Leaves(7)...), Branch(Leaf(10))),
	))
	action, score := minimax.New(Evaluate).WithMaxDepth(1).Search(root)
	assert.Equal(t, game.Action("a1"), action)
	assert.Equal(t, float32(7), score)
}

func TestInvalidDepth(t *testing.T) {
	assert.Panics(t, func() { minimax.New(Evaluate).WithMaxDepth(-1) })
}

func TestMaze(t *testing.T) {
	l, err := maze.ParseLayout("food", `
%%%%%
%P..%
%%%%%
`)
	require.NoError(t, err)
	s := maze.New(l, -1)
	action, score := minimax.New(evaluators.Score).WithMaxDepth(1).Search(s)
	assert.Equal(t, game.East, action)
	assert.Equal(t, float32(maze.FoodScore-maze.TimePenalty), score)

	// Two moves ahead it sees the win.
	action, score = minimax.New(evaluators.Score).WithMaxDepth(2).Search(s)
	assert.Equal(t, game.East, action)
	assert.Equal(t, float32(2*maze.FoodScore+maze.WinScore-2*maze.TimePenalty), score)
}
