// Package players provides the AI players for Pacman, and a factory to create them from a
// configuration string.
package players

import (
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/janpfeifer/pacmanGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/pacmanGo/internal/searchers/expectimax"
	"github.com/janpfeifer/pacmanGo/internal/searchers/minimax"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"strings"
)

// Player is anything that is able to play Pacman.
type Player interface {
	// Play returns the action chosen for Pacman (agent 0), and the score the player
	// estimated for it.
	//
	// It returns game.NoAction if Pacman has no legal actions.
	Play(state game.State) (action game.Action, score float32)

	// String returns a description of the player and its configuration.
	String() string
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed by the
	// UI built.
	DefaultPlayerConfig = "alphabeta,depth=2,eval=better"
)

// Builder creates a Player from its parameters. It must pop (see parameters.PopParamOr)
// the parameters it uses: any parameter left is reported as unknown.
type Builder func(params parameters.Params) (Player, error)

// builders of the players, by algorithm name.
var builders = map[string]Builder{
	"reflex":     newReflexFromParams,
	"minimax":    searcherBuilder(minimax.NewFromParams),
	"alphabeta":  searcherBuilder(alphabeta.NewFromParams),
	"ab":         searcherBuilder(alphabeta.NewFromParams),
	"expectimax": searcherBuilder(expectimax.NewFromParams),
}

func searcherBuilder[S searchers.Searcher](newSearcher func(parameters.Params) (S, error)) Builder {
	return func(params parameters.Params) (Player, error) {
		s, err := newSearcher(params)
		if err != nil {
			return nil, err
		}
		return NewSearcherPlayer(s), nil
	}
}

// Algorithms returns the names of the algorithms accepted by New, sorted.
func Algorithms() []string {
	return generics.SortedKeys(builders)
}

// New creates a new AI player given the configuration string.
//
// Args:
//
//	config: the algorithm name ("reflex", "minimax", "alphabeta" (or "ab") or "expectimax"), followed by
//		a comma-separated list of optional parameters with optional values associated.
//		If empty, the default is given by DefaultPlayerConfig.
//
// Notice DefaultPlayerConfig uses the "better" evaluator, while a configuration that names an algorithm
// without the "eval" parameter uses the raw game score.
//
// The searchers accept the parameters:
//
//   - depth (int): Max depth of search, in full rounds of all agents. Default is 2. With depth=0 the
//     searchers only evaluate the current state and return game.NoAction.
//   - eval (string): Name of the evaluator used at the cutoff of the search, see evaluators.Names.
//     Default is "score".
//
// The "reflex" player takes no parameters.
//
// An unknown algorithm returns an error wrapping searchers.ErrUnknownSearcher.
func New(config string) (Player, error) {
	if strings.TrimSpace(config) == "" {
		config = DefaultPlayerConfig
	}
	name, params, err := parameters.SplitName(config)
	if err != nil {
		return nil, err
	}
	builder, found := builders[name]
	if !found {
		return nil, errors.Wrapf(searchers.ErrUnknownSearcher, "AI player %q, valid values are: %s",
			name, strings.Join(Algorithms(), ", "))
	}
	player, err := builder(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player %q", name)
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player %q", name)
	}
	klog.V(1).Infof("Created AI player %s from %q", player, config)
	return player, nil
}
