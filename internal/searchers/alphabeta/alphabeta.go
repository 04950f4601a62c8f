// Package alphabeta implements minimax search with alpha-beta pruning.
//
// It chooses the same actions as minimax, but skips the branches that can't change the
// result. See: wikipedia.org/wiki/Alpha-beta_pruning
package alphabeta

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
// It is used by players.SearcherPlayer to implement an AI player (players.Player interface).
type Searcher struct {
	maxDepth int
	eval     evaluators.Evaluator
	stats    searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns an Alpha-Beta Pruning based searchers.Searcher implementation.
// There are other optional configurations, see methods Searcher.With...
//
// The one obligatory parameter is the evaluator used at the cutoff of the search.
func New(eval evaluators.Evaluator) *Searcher {
	return &Searcher{
		eval:     eval,
		maxDepth: searchers.DefaultMaxDepth,
	}
}

// NewFromParams creates an alpha-beta searcher configured by the parameters "depth" and "eval".
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
//
// The default is searchers.DefaultMaxDepth.
func (ab *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	searchers.CheckMaxDepth(maxDepth)
	ab.maxDepth = maxDepth
	return ab
}

// String implements searchers.Searcher.
func (ab *Searcher) String() string {
	return fmt.Sprintf("alphabeta(depth=%d)", ab.maxDepth)
}

// Stats implements searchers.Searcher.
func (ab *Searcher) Stats() searchers.Stats {
	return ab.stats
}

// Search implements the Searcher interface.
//
// The score returned is exact for the chosen action.
func (ab *Searcher) Search(state game.State) (action game.Action, score float32) {
	start := time.Now()
	ab.stats = searchers.Stats{}
	score, action = ab.maxValue(state, 0, math32.Inf(-1), math32.Inf(1))
	searchers.LogStats(ab, action, score, time.Since(start))
	return
}

func (ab *Searcher) evaluate(state game.State) float32 {
	ab.stats.Evals++
	return ab.eval(state)
}

// maxValue for Pacman: alpha is the value Pacman can already guarantee and beta the value
// the ghosts can already guarantee, along the path to this state.
func (ab *Searcher) maxValue(state game.State, depth int, alpha, beta float32) (float32, game.Action) {
	ab.stats.Nodes++
	actions := state.LegalActions(game.PacmanIndex)
	if len(actions) == 0 || state.IsWin() || state.IsLose() || depth == ab.maxDepth {
		return ab.evaluate(state), game.NoAction
	}
	best, bestAction := math32.Inf(-1), game.NoAction
	for ii, action := range actions {
		value := ab.ghostsValue(state.Successor(game.PacmanIndex, action), depth, alpha, beta)
		if ii == 0 || value > best {
			best, bestAction = value, action
		}
		if best > beta {
			// The ghosts will never let the game get here.
			if ii < len(actions)-1 {
				ab.stats.Prunes++
			}
			return best, bestAction
		}
		alpha = math32.Max(alpha, best)
	}
	return best, bestAction
}

// ghostsValue is the value of the state after Pacman moved: the first ghost plays next, or
// if there are no ghosts, Pacman plays again at the next depth.
func (ab *Searcher) ghostsValue(state game.State, depth int, alpha, beta float32) float32 {
	if state.NumAgents() == 1 {
		value, _ := ab.maxValue(state, depth+1, alpha, beta)
		return value
	}
	return ab.minValue(state, 1, depth, alpha, beta)
}

// minValue for the ghost agent.
func (ab *Searcher) minValue(state game.State, agent, depth int, alpha, beta float32) float32 {
	ab.stats.Nodes++
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return ab.evaluate(state)
	}
	lastGhost := agent == state.NumAgents()-1
	best := math32.Inf(1)
	for ii, action := range actions {
		next := state.Successor(agent, action)
		var value float32
		if lastGhost {
			value, _ = ab.maxValue(next, depth+1, alpha, beta)
		} else {
			value = ab.minValue(next, agent+1, depth, alpha, beta)
		}
		if value < best {
			best = value
		}
		if best < alpha {
			// Pacman already has a better option elsewhere.
			if ii < len(actions)-1 {
				ab.stats.Prunes++
			}
			return best
		}
		beta = math32.Min(beta, best)
	}
	return best
}
