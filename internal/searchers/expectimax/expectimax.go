// Package expectimax implements the expectimax search: Pacman maximizes the evaluation, and
// each ghost is modeled as choosing uniformly at random among its legal actions.
package expectimax

import (
	"fmt"
	"github.com/chewxy/math32"
	"github.com/janpfeifer/pacmanGo/internal/evaluators"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"time"
)

// Searcher implements the searchers.Searcher interface.
type Searcher struct {
	maxDepth int
	eval     evaluators.Evaluator
	stats    searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns an expectimax searcher that evaluates the states at the cutoff with eval.
func New(eval evaluators.Evaluator) *Searcher {
	return &Searcher{
		eval:     eval,
		maxDepth: searchers.DefaultMaxDepth,
	}
}

// NewFromParams creates an expectimax searcher configured by the parameters "depth" and "eval".
func NewFromParams(params parameters.Params) (*Searcher, error) {
	eval, err := searchers.EvaluatorFromParams(params)
	if err != nil {
		return nil, err
	}
	maxDepth, err := searchers.MaxDepthFromParams(params)
	if err != nil {
		return nil, err
	}
	return New(eval).WithMaxDepth(maxDepth), nil
}

// WithMaxDepth sets the max depth of search: the unit here is one round of all agents.
func (e *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	searchers.CheckMaxDepth(maxDepth)
	e.maxDepth = maxDepth
	return e
}

// String implements searchers.Searcher.
func (e *Searcher) String() string {
	return fmt.Sprintf("expectimax(depth=%d)", e.maxDepth)
}

// Stats implements searchers.Searcher.
func (e *Searcher) Stats() searchers.Stats {
	return e.stats
}

// Search implements searchers.Searcher.
//
// The score is the expected value of the chosen action. A ghost move that can lead both to
// a certain win (+Inf) and to a certain loss (-Inf) is valued -Inf, instead of the NaN mean.
func (e *Searcher) Search(state game.State) (action game.Action, score float32) {
	start := time.Now()
	e.stats = searchers.Stats{}
	score, action = e.maxValue(state, 0)
	searchers.LogStats(e, action, score, time.Since(start))
	return
}

func (e *Searcher) evaluate(state game.State) float32 {
	e.stats.Evals++
	return e.eval(state)
}

func (e *Searcher) maxValue(state game.State, depth int) (float32, game.Action) {
	e.stats.Nodes++
	actions := state.LegalActions(game.PacmanIndex)
	if len(actions) == 0 || state.IsWin() || state.IsLose() || depth == e.maxDepth {
		return e.evaluate(state), game.NoAction
	}
	best, bestAction := math32.Inf(-1), game.NoAction
	for ii, action := range actions {
		value := e.ghostsValue(state.Successor(game.PacmanIndex, action), depth)
		if ii == 0 || value > best {
			best, bestAction = value, action
		}
	}
	return best, bestAction
}

// ghostsValue is the value of the state after Pacman moved: the first ghost plays next, or
// if there are no ghosts, Pacman plays again at the next depth.
func (e *Searcher) ghostsValue(state game.State, depth int) float32 {
	if state.NumAgents() == 1 {
		value, _ := e.maxValue(state, depth+1)
		return value
	}
	return e.expectedValue(state, 1, depth)
}

// expectedValue is the mean of the values of the ghost agent's actions.
func (e *Searcher) expectedValue(state game.State, agent, depth int) float32 {
	e.stats.Nodes++
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return e.evaluate(state)
	}
	lastGhost := agent == state.NumAgents()-1
	var sum float32
	for _, action := range actions {
		next := state.Successor(agent, action)
		if lastGhost {
			value, _ := e.maxValue(next, depth+1)
			sum += value
		} else {
			sum += e.expectedValue(next, agent+1, depth)
		}
	}
	mean := sum / float32(len(actions))
	if math32.IsNaN(mean) {
		// Both a certain win and a certain loss are possible: a loss dominates.
		return math32.Inf(-1)
	}
	return mean
}
