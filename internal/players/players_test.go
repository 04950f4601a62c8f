package players

import (
	"github.com/janpfeifer/pacmanGo/internal/evaluators"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/maze"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"testing"
)

func init() {
	klog.InitFlags(nil)
}

func parseMaze(t *testing.T, text string) *maze.State {
	l, err := maze.ParseLayout(t.Name(), text)
	require.NoError(t, err)
	return maze.New(l, -1)
}

func TestNew(t *testing.T) {
	for config, want := range map[string]string{
		"":                              "alphabeta(depth=2)",
		"minimax,depth=3,eval=better":   "minimax(depth=3)",
		"ab":                            "alphabeta(depth=2)",
		" alphabeta , depth=0 ":         "alphabeta(depth=0)",
		"expectimax,depth=1,eval=score": "expectimax(depth=1)",
		"reflex":                        "reflex",
	} {
		player, err := New(config)
		require.NoErrorf(t, err, "config=%q", config)
		assert.Equalf(t, want, player.String(), "config=%q", config)
	}

	player, err := New("reflex")
	require.NoError(t, err)
	assert.IsType(t, &Reflex{}, player)
	player, err = New("minimax")
	require.NoError(t, err)
	assert.IsType(t, &SearcherPlayer{}, player)
}

func TestDefaults(t *testing.T) {
	// The default player uses the "better" evaluator, but searchers configured without
	// "eval" use the raw score.
	name, params, err := parameters.SplitName(DefaultPlayerConfig)
	require.NoError(t, err)
	assert.Equal(t, "alphabeta", name)
	assert.Equal(t, "better", params["eval"])
	assert.Equal(t, "score", evaluators.Default)
}

func TestNewErrors(t *testing.T) {
	_, err := New("mcts,depth=2")
	assert.ErrorIs(t, err, searchers.ErrUnknownSearcher)

	for _, config := range []string{
		"minimax,foo=1",
		"reflex,depth=2",
		"minimax,eval=nope",
		"minimax,depth=-1",
		"alphabeta,depth=two",
		"depth=2",
	} {
		_, err = New(config)
		assert.Errorf(t, err, "config=%q", config)
		assert.NotErrorIsf(t, err, searchers.ErrUnknownSearcher, "config=%q", config)
	}
	_, err = New("minimax,foo=1")
	assert.ErrorContains(t, err, "foo")
}

func TestAlgorithms(t *testing.T) {
	assert.Equal(t, []string{"ab", "alphabeta", "expectimax", "minimax", "reflex"}, Algorithms())
}

func TestSearcherPlayer(t *testing.T) {
	state := parseMaze(t, `
%%%%%
%P..%
%%%%%`)
	player, err := New("minimax,depth=1")
	require.NoError(t, err)
	action, score := player.Play(state)
	assert.Equal(t, game.East, action)
	assert.Equal(t, float32(9), score)
}

func TestReflexTies(t *testing.T) {
	// East and West eat one of the two symmetric food pellets, and score the same.
	state := parseMaze(t, `
%%%%%
%.P.%
%%%%%`)
	counts := make(map[game.Action]int)
	player := NewReflex().WithRand(rand.New(rand.NewPCG(42, 7)))
	for range 200 {
		action, score := player.Play(state)
		assert.Equal(t, float32(1000.0/2+10000.0/1), score)
		counts[action]++
	}
	assert.Len(t, counts, 2)
	assert.Greater(t, counts[game.East], 0)
	assert.Greater(t, counts[game.West], 0)

	// Same with the global random number generator.
	counts = make(map[game.Action]int)
	player = NewReflex()
	for range 200 {
		action, _ := player.Play(state)
		counts[action]++
	}
	assert.Greater(t, counts[game.East], 0)
	assert.Greater(t, counts[game.West], 0)
}

func TestReflexAvoidsGhosts(t *testing.T) {
	state := parseMaze(t, `
%%%%%%%
%. P G%
%%%%%%%`)
	action, _ := NewReflex().Play(state)
	assert.Equal(t, game.West, action)

	// Match over: no legal actions.
	l, err := maze.ParseLayout("over", "%PG.%")
	require.NoError(t, err)
	over := maze.New(l, -1).Act(game.PacmanIndex, game.East)
	require.True(t, over.IsLose())
	action, _ = NewReflex().Play(over)
	assert.Equal(t, game.NoAction, action)
}
