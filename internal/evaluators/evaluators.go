// Package evaluators implements the functions that score game states for Pacman (the
// maximizing agent): higher is better.
//
// Evaluator is used by the searchers at the leaves (cutoff) of the search tree, while
// ActionEvaluator is used by the reflex player, which doesn't search.
package evaluators

import (
	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/pkg/errors"
	"strings"
)

// Evaluator returns a score for the given state. +Inf and -Inf represent a certain win
// and a certain loss.
type Evaluator func(state game.State) float32

// ActionEvaluator scores taking action (by Pacman) on the given state.
type ActionEvaluator func(state game.State, action game.Action) float32

// Default is the name of the evaluator used if none is configured.
const Default = "score"

var (
	// Registered evaluators by name.
	byName = map[string]Evaluator{
		"score":                    Score,
		"scoreEvaluationFunction":  Score,
		"better":                   Better,
		"betterEvaluationFunction": Better,
	}
)

// Names of the evaluators available with ByName, sorted.
func Names() []string {
	return generics.SortedKeys(byName)
}

// ByName returns the evaluator registered with the given name. An empty name returns the
// Default evaluator.
func ByName(name string) (Evaluator, error) {
	if name == "" {
		name = Default
	}
	eval, found := byName[name]
	if !found {
		return nil, errors.Errorf("unknown evaluator %q, valid values are: %s", name, strings.Join(Names(), ", "))
	}
	return eval, nil
}

// Score is the default evaluator: it simply returns the game score.
func Score(state game.State) float32 {
	return state.Score()
}

// asBoard converts state to a game.Board, or panics. The position-aware evaluators can only
// be used with states that implement game.Board.
func asBoard(state game.State) game.Board {
	board, ok := state.(game.Board)
	if !ok {
		exceptions.Panicf("evaluators: state of type %T doesn't implement game.Board", state)
	}
	return board
}

// Reflex scores a Pacman action by looking only at the immediately following state.
//
//   - Not moving (including by Stop) scores -Inf.
//   - Getting within distance 1 of any ghost (scared or not) scores -Inf.
//   - Clearing the board of food scores +Inf.
//   - Otherwise, 1000/sum(distances to food) + 10000/len(food): it prefers being close to
//     the food and there being fewer food left.
func Reflex(state game.State, action game.Action) float32 {
	current := asBoard(state)
	next := asBoard(state.Successor(game.PacmanIndex, action))
	pos := next.Position(game.PacmanIndex)
	if pos == current.Position(game.PacmanIndex) {
		return math32.Inf(-1)
	}
	for _, ghostPos := range game.GhostPositions(next) {
		if ghostPos.Distance(pos) < 2 {
			return math32.Inf(-1)
		}
	}
	food := next.Food()
	if len(food) == 0 {
		return math32.Inf(1)
	}
	var sumDist int
	for _, foodPos := range food {
		sumDist += foodPos.Distance(pos)
	}
	return 1000/float32(sumDist) + 10000/float32(len(food))
}

// Weights used by Better.
const (
	FoodDistanceWeight        = -1.5
	GhostDistanceWeight       = -2
	ScaredGhostDistanceWeight = -2
	CapsuleWeight             = -20
	FoodWeight                = -4
)

// Better evaluates any state, not only the ones following an action, so it can be used
// at any depth of the search.
//
// A win is +Inf and a loss is -Inf. Otherwise, it's a weighted sum of the distance to the
// closest food, the inverse of the distance to the closest dangerous ghost, the distance to the
// closest scared ghost, and the number of capsules and food left.
//
// If there are no dangerous (or scared) ghosts, the corresponding distance is -1, and it
// is used as is in the weighted sum.
func Better(state game.State) float32 {
	if state.IsWin() {
		return math32.Inf(1)
	}
	if state.IsLose() {
		return math32.Inf(-1)
	}
	board := asBoard(state)
	pos := board.Position(game.PacmanIndex)
	food := board.Food()

	minFoodDist := -1
	for _, foodPos := range food {
		if d := foodPos.Distance(pos); minFoodDist < 0 || d < minFoodDist {
			minFoodDist = d
		}
	}
	if minFoodDist < 0 {
		minFoodDist = 0
	}

	minGhostDist, minScaredGhostDist := -1, -1
	for ghost := 1; ghost < board.NumAgents(); ghost++ {
		d := board.Position(ghost).Distance(pos)
		if board.ScaredTimer(ghost) == 0 {
			if minGhostDist < 0 || d < minGhostDist {
				minGhostDist = d
			}
		} else {
			if minScaredGhostDist < 0 || d < minScaredGhostDist {
				minScaredGhostDist = d
			}
		}
	}

	var score float32
	score += FoodDistanceWeight * float32(minFoodDist)
	score += GhostDistanceWeight * (1 / float32(minGhostDist))
	score += ScaredGhostDistanceWeight * float32(minScaredGhostDist)
	score += CapsuleWeight * float32(len(board.Capsules()))
	score += FoodWeight * float32(len(food))
	return score
}
