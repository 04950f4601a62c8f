package players

import (
	"github.com/janpfeifer/pacmanGo/internal/evaluators"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"k8s.io/klog/v2"
	"math/rand/v2"
)

// Reflex player doesn't search: it scores each of Pacman's legal actions with
// evaluators.Reflex, and plays the best one. Ties are broken at random.
type Reflex struct {
	eval evaluators.ActionEvaluator
	rng  *rand.Rand
}

// Assert that Reflex is a Player.
var _ Player = &Reflex{}

// NewReflex returns a reflex player using evaluators.Reflex.
func NewReflex() *Reflex {
	return &Reflex{eval: evaluators.Reflex}
}

func newReflexFromParams(_ parameters.Params) (Player, error) {
	return NewReflex(), nil
}

// WithRand sets the random number generator used to break ties. By default, the global one
// from math/rand/v2 is used.
func (r *Reflex) WithRand(rng *rand.Rand) *Reflex {
	r.rng = rng
	return r
}

func (r *Reflex) intN(n int) int {
	if r.rng == nil {
		return rand.IntN(n)
	}
	return r.rng.IntN(n)
}

// Play implements the Player interface.
func (r *Reflex) Play(state game.State) (action game.Action, score float32) {
	actions := state.LegalActions(game.PacmanIndex)
	if len(actions) == 0 {
		return game.NoAction, state.Score()
	}
	scores := generics.SliceMap(actions, func(a game.Action) float32 { return r.eval(state, a) })
	best := generics.IndicesOfMax(scores)
	choice := best[r.intN(len(best))]
	action, score = actions[choice], scores[choice]
	if klog.V(2).Enabled() {
		klog.Infof("AI (%s) playing %s, score=%.3f, %d actions tied", r, action, score, len(best))
	}
	return
}

// String implements the Player interface.
func (r *Reflex) String() string {
	return "reflex"
}
