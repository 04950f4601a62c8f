// Package game defines the query interface the agents use to inspect and advance a
// Pacman match.
//
// The search algorithms only depend on State. Evaluators that look at positions, food
// and ghosts depend on Board.
package game

import (
	"fmt"
)

// Action an agent can take. Pacman may also Stop, ghosts can't.
type Action string

const (
	// NoAction is returned when there is nothing to be played, e.g. on a terminal state.
	NoAction Action = ""

	North Action = "North"
	South Action = "South"
	East  Action = "East"
	West  Action = "West"
	Stop  Action = "Stop"
)

// Directions enumerates all actions that move an agent, in a fixed order.
var Directions = [4]Action{North, South, East, West}

// Delta returns the change in position of taking the action: North is up, which
// means decreasing Y (layouts are read top to bottom).
func (a Action) Delta() Pos {
	switch a {
	case North:
		return Pos{0, -1}
	case South:
		return Pos{0, 1}
	case East:
		return Pos{1, 0}
	case West:
		return Pos{-1, 0}
	}
	return Pos{}
}

// Reverse returns the opposite direction. Stop and NoAction are their own reverse.
func (a Action) Reverse() Action {
	switch a {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return a
}

// String implements fmt.Stringer.
func (a Action) String() string {
	if a == NoAction {
		return "<none>"
	}
	return string(a)
}

// PacmanIndex is the agent index of Pacman, the maximizing agent. Ghosts are 1 and above.
const PacmanIndex = 0

// State is the capability set the search algorithms need from a game state.
//
// States are immutable from the point of view of the searchers: Successor must return a
// new State and leave the receiver unchanged.
type State interface {
	// LegalActions of the given agent. An empty result means the agent can't move, and
	// the searchers treat the state as a leaf.
	LegalActions(agent int) []Action

	// Successor returns the state after agent takes action.
	Successor(agent int, action Action) State

	// IsWin returns whether Pacman won.
	IsWin() bool

	// IsLose returns whether Pacman lost.
	IsLose() bool

	// NumAgents returns the number of agents, Pacman included.
	NumAgents() int

	// Score returns the current game score.
	Score() float32
}

// Board extends State with the queries used by the position-aware evaluators.
type Board interface {
	State

	// Position of the given agent.
	Position(agent int) Pos

	// Food returns the positions of the remaining food.
	Food() []Pos

	// Capsules returns the positions of the remaining power capsules.
	Capsules() []Pos

	// ScaredTimer returns the number of moves the ghost agent will remain scared. Zero for
	// a ghost that is dangerous.
	ScaredTimer(agent int) int
}

// Pos is a position in the maze. (0, 0) is the top-left corner.
type Pos struct {
	X, Y int
}

// Add returns pos displaced by delta.
func (pos Pos) Add(delta Pos) Pos {
	return Pos{pos.X + delta.X, pos.Y + delta.Y}
}

// Distance returns the manhattan distance of two positions.
func (pos Pos) Distance(pos2 Pos) int {
	return abs(pos.X-pos2.X) + abs(pos.Y-pos2.Y)
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// GhostPositions returns the positions of every ghost in the board, in agent order.
func GhostPositions(b Board) []Pos {
	positions := make([]Pos, 0, b.NumAgents()-1)
	for agent := 1; agent < b.NumAgents(); agent++ {
		positions = append(positions, b.Position(agent))
	}
	return positions
}

// IsTerminal returns whether the match is over.
func IsTerminal(s State) bool {
	return s.IsWin() || s.IsLose()
}
