// Package ghosts implements the policies of the ghosts in actual matches.
//
// The searchers model the ghosts as either adversarial (minimax, alpha-beta) or uniformly
// random (expectimax), but the ghosts Pacman plays against follow the policies here.
package ghosts

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/pkg/errors"
	"math/rand/v2"
	"strings"
)

// Ghost chooses the actions of one ghost agent.
//
// Ghosts hold a random number generator, so they are not safe for concurrent use.
type Ghost interface {
	// Act returns the action of the ghost agent on the given state, or game.NoAction if
	// it has no legal actions.
	Act(board game.Board, agent int) game.Action

	// String returns a description of the ghost policy.
	String() string
}

// Default ghost policy configuration.
const Default = "random"

// Default probabilities of a DirectionalGhost.
const (
	DefaultAttackProb = 0.8
	DefaultFleeProb   = 0.8
)

// randSource returns r, or a generator seeded randomly if r is nil.
func randSource(r *rand.Rand) *rand.Rand {
	if r == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return r
}

// Random ghost chooses uniformly among its legal actions.
type Random struct {
	rng *rand.Rand
}

var _ Ghost = (*Random)(nil)

// NewRandom returns a Random ghost using rng. If rng is nil a randomly seeded one is created.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: randSource(rng)}
}

// Act implements Ghost.
func (g *Random) Act(board game.Board, agent int) game.Action {
	actions := board.LegalActions(agent)
	if len(actions) == 0 {
		return game.NoAction
	}
	return actions[g.rng.IntN(len(actions))]
}

// String implements Ghost.
func (g *Random) String() string { return "random" }

// Directional ghost moves towards Pacman with probability AttackProb and otherwise moves at
// random. While scared it moves away from Pacman, with probability FleeProb.
type Directional struct {
	AttackProb, FleeProb float64
	rng                  *rand.Rand
}

var _ Ghost = (*Directional)(nil)

// NewDirectional returns a Directional ghost with the default probabilities. If rng is nil a
// randomly seeded one is created.
func NewDirectional(rng *rand.Rand) *Directional {
	return &Directional{
		AttackProb: DefaultAttackProb,
		FleeProb:   DefaultFleeProb,
		rng:        randSource(rng),
	}
}

// Act implements Ghost.
func (g *Directional) Act(board game.Board, agent int) game.Action {
	actions := board.LegalActions(agent)
	if len(actions) == 0 {
		return game.NoAction
	}
	pos := board.Position(agent)
	pacman := board.Position(game.PacmanIndex)
	scared := board.ScaredTimer(agent) > 0

	// Fleeing maximizes the distance, attacking minimizes it.
	distances := generics.SliceMap(actions, func(a game.Action) int {
		d := pos.Add(a.Delta()).Distance(pacman)
		if scared {
			return d
		}
		return -d
	})
	prob := g.AttackProb
	if scared {
		prob = g.FleeProb
	}
	if g.rng.Float64() < prob {
		best := generics.IndicesOfMax(distances)
		return actions[best[g.rng.IntN(len(best))]]
	}
	return actions[g.rng.IntN(len(actions))]
}

// String implements Ghost.
func (g *Directional) String() string {
	return fmt.Sprintf("directional(attack=%g,flee=%g)", g.AttackProb, g.FleeProb)
}

// Names of the ghost policies accepted by New.
func Names() []string {
	return []string{"directional", "random"}
}

// New creates a ghost policy from a configuration string: "random" or
// "directional[,attack=<prob>][,flee=<prob>]". An empty config uses Default.
//
// If rng is nil, a randomly seeded one is created.
func New(config string, rng *rand.Rand) (Ghost, error) {
	if strings.TrimSpace(config) == "" {
		config = Default
	}
	name, params, err := parameters.SplitName(config)
	if err != nil {
		return nil, err
	}
	var ghost Ghost
	switch name {
	case "random":
		ghost = NewRandom(rng)
	case "directional":
		d := NewDirectional(rng)
		if d.AttackProb, err = popProb(params, "attack", DefaultAttackProb); err != nil {
			return nil, err
		}
		if d.FleeProb, err = popProb(params, "flee", DefaultFleeProb); err != nil {
			return nil, err
		}
		ghost = d
	default:
		return nil, errors.Errorf("unknown ghost policy %q, valid values are: %s", name, strings.Join(Names(), ", "))
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessagef(err, "ghost policy %q", name)
	}
	return ghost, nil
}

func popProb(params parameters.Params, key string, defaultValue float64) (float64, error) {
	prob, err := parameters.PopParamOr(params, key, defaultValue)
	if err != nil {
		return 0, err
	}
	if prob < 0 || prob > 1 {
		return 0, errors.Errorf("invalid %s=%g, it must be a probability in [0, 1]", key, prob)
	}
	return prob, nil
}
