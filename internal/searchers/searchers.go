// Package searchers defines the interface of the adversarial search algorithms, and what is
// shared among them. The algorithms themselves are implemented in the sub-packages.
//
// All searchers work on any game.State: agent 0 (Pacman) maximizes the evaluation, and the
// other agents play in round-robin order after it. One full round of all agents is one
// level of depth.
package searchers

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/evaluators"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"time"
)

// Searcher is the interface that any of the search algorithms must adhere to be valid.
//
// Searchers keep running stats, so they are not safe for concurrent use.
type Searcher interface {
	// Search returns the action Pacman should take on the given state, along with the
	// value the search estimated for it.
	//
	// It returns game.NoAction if Pacman has no legal actions or the state is terminal.
	Search(state game.State) (action game.Action, score float32)

	// Stats of the last call to Search.
	Stats() Stats

	// String returns a description of the searcher and its configuration.
	String() string
}

// Stats stores running stats collected during the search: for benchmarking, monitoring
// and debugging purposes.
type Stats struct {
	// Nodes visited: each state reached during the search, the root included.
	Nodes int

	// Evals is the number of calls to the evaluator.
	Evals int

	// Prunes is the number of times the remaining actions of a node were skipped.
	Prunes int
}

// DefaultMaxDepth of search. The unit is one full round of all agents.
const DefaultMaxDepth = 2

// ErrUnknownSearcher is returned (wrapped) when asking for a search algorithm that doesn't exist.
var ErrUnknownSearcher = errors.New("unknown searcher")

// CheckMaxDepth panics if maxDepth is not valid.
func CheckMaxDepth(maxDepth int) {
	if maxDepth < 0 {
		exceptions.Panicf("searchers: invalid maxDepth=%d, it must be >= 0", maxDepth)
	}
}

// MaxDepthFromParams pops the "depth" parameter, validating it.
func MaxDepthFromParams(params parameters.Params) (int, error) {
	maxDepth, err := parameters.PopParamOr(params, "depth", DefaultMaxDepth)
	if err != nil {
		return 0, err
	}
	if maxDepth < 0 {
		return 0, errors.Errorf("invalid depth=%d, it must be >= 0", maxDepth)
	}
	return maxDepth, nil
}

// EvaluatorFromParams pops the "eval" parameter and returns the corresponding evaluator.
func EvaluatorFromParams(params parameters.Params) (evaluators.Evaluator, error) {
	name, err := parameters.PopParamOr(params, "eval", evaluators.Default)
	if err != nil {
		return nil, err
	}
	return evaluators.ByName(name)
}

// LogStats logs the stats of a search, if verbosity is at least 2.
func LogStats(s Searcher, action game.Action, score float32, elapsed time.Duration) {
	if !klog.V(2).Enabled() {
		return
	}
	stats := s.Stats()
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		seconds = 1e-9
	}
	klog.Infof("%s: action=%s, score=%.2f, stats=%+v", s, action, score, stats)
	klog.Infof("  nodes/s=%.1f, evals/s=%.1f", float64(stats.Nodes)/seconds, float64(stats.Evals)/seconds)
}
