// Package minimax implements the minimax search: Pacman maximizes the evaluation and every
// ghost minimizes it.
package minimax

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

// New returns a minimax searcher that evaluates the states at the cutoff with eval.
func New(eval evaluators.Evaluator) *Searcher {
	return &Searcher{
		eval:     eval,
		maxDepth: searchers.DefaultMaxDepth,
	}
}

// NewFromParams creates a minimax searcher configured by the parameters "depth" and "eval".
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
// A depth of 0 evaluates the current state only.
//
// The default is searchers.DefaultMaxDepth.
func (s *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	searchers.CheckMaxDepth(maxDepth)
	s.maxDepth = maxDepth
	return s
}

// String implements searchers.Searcher.
func (s *Searcher) String() string {
	return fmt.Sprintf("minimax(depth=%d)", s.maxDepth)
}

// Stats implements searchers.Searcher.
func (s *Searcher) Stats() searchers.Stats {
	return s.stats
}

// Search implements searchers.Searcher.
func (s *Searcher) Search(state game.State) (action game.Action, score float32) {
	start := time.Now()
	s.stats = searchers.Stats{}
	score, action = s.maxValue(state, 0)
	searchers.LogStats(s, action, score, time.Since(start))
	return
}

func (s *Searcher) evaluate(state game.State) float32 {
	s.stats.Evals++
	return s.eval(state)
}

// maxValue returns the value of the state for Pacman, and the action that achieves it.
// Ties are broken in favor of the first action.
func (s *Searcher) maxValue(state game.State, depth int) (float32, game.Action) {
	s.stats.Nodes++
	actions := state.LegalActions(game.PacmanIndex)
	if len(actions) == 0 || state.IsWin() || state.IsLose() || depth == s.maxDepth {
		return s.evaluate(state), game.NoAction
	}
	best, bestAction := math32.Inf(-1), game.NoAction
	for ii, action := range actions {
		value := s.ghostsValue(state.Successor(game.PacmanIndex, action), depth)
		if ii == 0 || value > best {
			best, bestAction = value, action
		}
	}
	return best, bestAction
}

// ghostsValue is the value of the state after Pacman moved: the first ghost plays next, or
// if there are no ghosts, Pacman plays again at the next depth.
func (s *Searcher) ghostsValue(state game.State, depth int) float32 {
	if state.NumAgents() == 1 {
		value, _ := s.maxValue(state, depth+1)
		return value
	}
	return s.minValue(state, 1, depth)
}

// minValue returns the value of the state when it's the ghost agent's turn to play.
func (s *Searcher) minValue(state game.State, agent, depth int) float32 {
	s.stats.Nodes++
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return s.evaluate(state)
	}
	lastGhost := agent == state.NumAgents()-1
	best := math32.Inf(1)
	for _, action := range actions {
		next := state.Successor(agent, action)
		var value float32
		if lastGhost {
			value, _ = s.maxValue(next, depth+1)
		} else {
			value = s.minValue(next, agent+1, depth)
		}
		if value < best {
			best = value
		}
	}
	return best
}
