// Package matches plays Pacman matches between a Pacman player and the ghost policies, on
// the reference maze.
package matches

import (
	"context"
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/ghosts"
	"github.com/janpfeifer/pacmanGo/internal/maze"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"runtime"
	"sync"
	"time"
)

// DefaultMaxMoves is the number of Pacman moves after which a match is stopped.
const DefaultMaxMoves = 500

// Config of the matches to play. Players and ghosts are created for each match, so matches
// can be played concurrently.
type Config struct {
	Layout *maze.Layout

	// NumGhosts to play against. If < 0 all the ghosts in the layout are used.
	NumGhosts int

	// MaxMoves of Pacman before the match is stopped (neither won nor lost). If <= 0 there
	// is no limit.
	MaxMoves int

	// NewPacman creates the Pacman player for the match.
	NewPacman func(matchIdx int) (players.Player, error)

	// NewGhost creates the policy of the ghost agent (1 or above) for the match.
	NewGhost func(matchIdx, agent int) (ghosts.Ghost, error)

	// OnMove, if set, is called with the state after each round of all agents. Calls for
	// different matches may happen concurrently.
	OnMove func(matchIdx int, state *maze.State)
}

// Result of one match.
type Result struct {
	MatchIdx  int
	Win, Lose bool
	Score     float32
	Moves     int
	Elapsed   time.Duration

	// Final state of the match.
	Final *maze.State
}

// String implements fmt.Stringer.
func (r Result) String() string {
	outcome := "timeout"
	if r.Win {
		outcome = "win"
	} else if r.Lose {
		outcome = "lose"
	}
	return fmt.Sprintf("Match-%05d: %s, score=%g, moves=%d, elapsed=%s", r.MatchIdx, outcome, r.Score, r.Moves, r.Elapsed)
}

// Run plays one match. The context is checked between moves: if it is cancelled the match
// stops and ctx.Err() is returned.
//
// Errors creating the players, and panics of the game rules (e.g. a player choosing an
// illegal action), are returned as errors. A Pacman player that returns game.NoAction
// before the match is over (e.g. a searcher with depth=0) is also an error.
func Run(ctx context.Context, config *Config, matchIdx int) (result Result, err error) {
	start := time.Now()
	if klog.V(1).Enabled() {
		klog.Infof("Starting match %d", matchIdx)
		defer func() { klog.Infof("Finished match %d: %s", matchIdx, result) }()
	}
	pacman, err := config.NewPacman(matchIdx)
	if err != nil {
		return result, errors.WithMessagef(err, "match %d", matchIdx)
	}
	state := maze.New(config.Layout, config.NumGhosts)
	ghostPolicies := make([]ghosts.Ghost, state.NumAgents())
	for agent := 1; agent < state.NumAgents(); agent++ {
		ghostPolicies[agent], err = config.NewGhost(matchIdx, agent)
		if err != nil {
			return result, errors.WithMessagef(err, "match %d", matchIdx)
		}
	}

	err = exceptions.TryCatch[error](func() {
		for !state.IsWin() && !state.IsLose() {
			if config.MaxMoves > 0 && state.MoveNumber >= config.MaxMoves {
				klog.V(1).Infof("Match %d reached max moves %d", matchIdx, config.MaxMoves)
				return
			}
			if ctx.Err() != nil {
				return
			}
			for agent := range state.NumAgents() {
				var action game.Action
				if agent == game.PacmanIndex {
					action, _ = pacman.Play(state)
				} else {
					action = ghostPolicies[agent].Act(state, agent)
				}
				if action == game.NoAction {
					if agent == game.PacmanIndex {
						// Pacman always has legal actions (at least Stop) while the match is on.
						exceptions.Panicf("%s returned no action for Pacman at move #%d", pacman, state.MoveNumber)
					}
					// Ghost can't move.
					continue
				}
				state = state.Act(agent, action)
				if state.IsWin() || state.IsLose() {
					break
				}
			}
			if config.OnMove != nil {
				config.OnMove(matchIdx, state)
			}
		}
	})
	result = Result{
		MatchIdx: matchIdx,
		Win:      state.IsWin(),
		Lose:     state.IsLose(),
		Score:    state.Score(),
		Moves:    state.MoveNumber,
		Elapsed:  time.Since(start),
		Final:    state,
	}
	if err != nil {
		return result, errors.WithMessagef(err, "match %d with %s failed", matchIdx, pacman)
	}
	return result, ctx.Err()
}

// Summary of a series of matches.
type Summary struct {
	start              time.Time
	Played, Total      int
	Wins, Losses       int
	TotalScore         float32
	MinScore, MaxScore float32
	Results            []Result
}

func newSummary(total int) *Summary {
	return &Summary{start: time.Now(), Total: total, Results: make([]Result, 0, total)}
}

func (s *Summary) add(r Result) {
	if s.Played == 0 || r.Score < s.MinScore {
		s.MinScore = r.Score
	}
	if s.Played == 0 || r.Score > s.MaxScore {
		s.MaxScore = r.Score
	}
	s.Played++
	s.TotalScore += r.Score
	if r.Win {
		s.Wins++
	} else if r.Lose {
		s.Losses++
	}
	s.Results = append(s.Results, r)
}

// AverageScore of the matches played so far.
func (s *Summary) AverageScore() float32 {
	if s.Played == 0 {
		return 0
	}
	return s.TotalScore / float32(s.Played)
}

// WinRate of the matches played so far.
func (s *Summary) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Played)
}

// String implements fmt.Stringer.
func (s *Summary) String() string {
	return fmt.Sprintf("Played %d of %d: %d wins, %d losses, %d timeouts (win rate %.1f%%) - score avg=%.1f, min=%g, max=%g - %s",
		s.Played, s.Total, s.Wins, s.Losses, s.Played-s.Wins-s.Losses, 100*s.WinRate(),
		s.AverageScore(), s.MinScore, s.MaxScore, time.Since(s.start).Round(time.Millisecond))
}

// RunAll plays numMatches matches, up to parallelism of them at the same time. If
// parallelism <= 0, GOMAXPROCS is used.
//
// onResult, if not nil, is called with the summary after each match finishes; calls are
// serialized, and the summary must not be retained. Results in the summary are in the order the matches finished.
//
// If the context is cancelled, the matches are interrupted and the partial summary is
// returned along with ctx.Err().
func RunAll(ctx context.Context, config *Config, numMatches, parallelism int, onResult func(*Summary, Result)) (*Summary, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	summary := newSummary(numMatches)
	var muSummary sync.Mutex
	var wg errgroup.Group
	wg.SetLimit(parallelism)
	for matchIdx := range numMatches {
		if ctx.Err() != nil {
			break
		}
		wg.Go(func() error {
			result, err := Run(ctx, config, matchIdx)
			if err != nil {
				if ctx.Err() != nil {
					// Interrupted matches are not accounted.
					return nil
				}
				return err
			}
			muSummary.Lock()
			defer muSummary.Unlock()
			summary.add(result)
			if onResult != nil {
				onResult(summary, result)
			}
			return nil
		})
	}
	err := wg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return summary, err
}
