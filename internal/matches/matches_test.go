package matches

import (
	"context"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/ghosts"
	"github.com/janpfeifer/pacmanGo/internal/maze"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"testing"
)

func init() {
	klog.InitFlags(nil)
}

func newConfig(t *testing.T, layoutText, pacmanConfig string) *Config {
	l, err := maze.ParseLayout(t.Name(), layoutText)
	require.NoError(t, err)
	return &Config{
		Layout:    l,
		NumGhosts: -1,
		MaxMoves:  DefaultMaxMoves,
		NewPacman: func(int) (players.Player, error) { return players.New(pacmanConfig) },
		NewGhost: func(matchIdx, agent int) (ghosts.Ghost, error) {
			return ghosts.NewRandom(rand.New(rand.NewPCG(uint64(matchIdx), uint64(agent)))), nil
		},
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	var rounds int
	config := newConfig(t, "%P..%", "minimax,depth=1")
	config.OnMove = func(matchIdx int, state *maze.State) {
		assert.Equal(t, 3, matchIdx)
		rounds++
	}
	result, err := Run(ctx, config, 3)
	require.NoError(t, err)
	assert.True(t, result.Win)
	assert.False(t, result.Lose)
	assert.Equal(t, 2, result.Moves)
	assert.Equal(t, float32(2*maze.FoodScore+maze.WinScore-2), result.Score)
	assert.Equal(t, 2, rounds)
	assert.Equal(t, 3, result.MatchIdx)

	// Pacman is trapped next to the ghost.
	result, err = Run(ctx, newConfig(t, "%PG.%", "alphabeta"), 0)
	require.NoError(t, err)
	assert.True(t, result.Lose)
	assert.Equal(t, float32(-1-maze.LoseScore), result.Score)
	assert.Contains(t, result.String(), "lose")

	// Food is unreachable.
	config = newConfig(t, "%P%.%", "reflex")
	config.MaxMoves = 5
	result, err = Run(ctx, config, 0)
	require.NoError(t, err)
	assert.False(t, result.Win || result.Lose)
	assert.Equal(t, 5, result.Moves)
	assert.Equal(t, float32(-5), result.Score)
	assert.Contains(t, result.String(), "timeout")
}

type northPlayer struct{}

func (northPlayer) Play(game.State) (game.Action, float32) { return game.North, 0 }
func (northPlayer) String() string                         { return "north" }

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	config := newConfig(t, "%P..%", "")
	config.NewPacman = func(int) (players.Player, error) { return northPlayer{}, nil }
	_, err := Run(ctx, config, 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "illegal action")

	// A searcher with depth 0 only evaluates the current state and doesn't choose an action.
	config = newConfig(t, "%P..%", "minimax,depth=0")
	config.MaxMoves = 0
	_, err = Run(ctx, config, 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "no action for Pacman")

	config = newConfig(t, "%P..%", "mcts")
	_, err = Run(ctx, config, 0)
	assert.Error(t, err)

	config = newConfig(t, "%PG.%", "")
	config.NewGhost = func(int, int) (ghosts.Ghost, error) { return nil, errors.New("no ghosts today") }
	_, err = Run(ctx, config, 0)
	assert.ErrorContains(t, err, "no ghosts today")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Run(cancelled, newConfig(t, "%P..%", ""), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAll(t *testing.T) {
	ctx := context.Background()
	config := newConfig(t, "%P..%", "alphabeta,depth=1")
	var calls int
	summary, err := RunAll(ctx, config, 8, 3, func(s *Summary, r Result) {
		calls++
		assert.Equal(t, calls, s.Played)
		assert.True(t, r.Win)
	})
	require.NoError(t, err)
	assert.Equal(t, 8, calls)
	assert.Equal(t, 8, summary.Played)
	assert.Equal(t, 8, summary.Wins)
	assert.Len(t, summary.Results, 8)
	assert.Equal(t, 1.0, summary.WinRate())
	assert.Equal(t, float32(518), summary.AverageScore())
	assert.Equal(t, float32(518), summary.MinScore)
	assert.Contains(t, summary.String(), "Played 8 of 8: 8 wins")

	// Ghosts in a real maze, all matches must finish without errors.
	l, err := maze.LayoutByName("smallClassic")
	require.NoError(t, err)
	config.Layout = l
	config.MaxMoves = 50
	summary, err = RunAll(ctx, config, 4, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Played)
	for _, r := range summary.Results {
		assert.LessOrEqual(t, r.Moves, 50)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	summary, err = RunAll(cancelled, config, 4, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Played)
}
