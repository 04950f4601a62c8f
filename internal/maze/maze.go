// Package maze implements game.Board for the classic Pacman rules: a single Pacman eating
// food in a maze, chased by ghosts that become edible for a while after Pacman eats a
// power capsule.
//
// It is a small reference implementation used by the match runner and by tests. States are
// immutable: Successor always returns a new State.
package maze

import (
	"cmp"
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"strings"
)

// Scoring and timing rules.
const (
	TimePenalty    = 1
	FoodScore      = 10
	WinScore       = 500
	LoseScore      = 500
	EatGhostScore  = 200
	ScaredDuration = 40
)

type agentState struct {
	pos    game.Pos
	dir    game.Action
	scared int
}

// State of a match. It implements game.Board.
type State struct {
	layout   *Layout
	agents   []agentState
	food     generics.Set[game.Pos]
	capsules generics.Set[game.Pos]
	score    float32
	win      bool
	lose     bool

	// MoveNumber counts the number of moves taken by Pacman.
	MoveNumber int
}

// Assert State is a game.Board.
var _ game.Board = (*State)(nil)

// New creates the initial state of a match in the given layout, with up to maxGhosts ghosts.
// If maxGhosts < 0, all the ghosts of the layout are used.
func New(layout *Layout, maxGhosts int) *State {
	numGhosts := layout.NumGhosts()
	if maxGhosts >= 0 && maxGhosts < numGhosts {
		numGhosts = maxGhosts
	}
	s := &State{
		layout:   layout,
		agents:   make([]agentState, 1+numGhosts),
		food:     layout.food,
		capsules: layout.capsules,
	}
	s.agents[0] = agentState{pos: layout.pacmanStart, dir: game.Stop}
	for ii := range numGhosts {
		s.agents[ii+1] = agentState{pos: layout.ghostStarts[ii], dir: game.Stop}
	}
	return s
}

// Layout returns the static layout of the maze.
func (s *State) Layout() *Layout {
	return s.layout
}

func (s *State) checkAgent(agent int) {
	if agent < 0 || agent >= len(s.agents) {
		exceptions.Panicf("maze: invalid agent %d, there are %d agents", agent, len(s.agents))
	}
}

// LegalActions implements game.State.
//
// Pacman can move to any neighboring position that is not a wall, or Stop. Ghosts can't
// Stop, and only reverse their direction if there is no other option.
// There are no legal actions after the match finishes.
func (s *State) LegalActions(agent int) []game.Action {
	s.checkAgent(agent)
	if s.win || s.lose {
		return nil
	}
	a := s.agents[agent]
	actions := s.layout.neighbors(a.pos)
	if agent == game.PacmanIndex {
		return append(actions, game.Stop)
	}
	if len(actions) > 1 {
		reverse := a.dir.Reverse()
		filtered := actions[:0]
		for _, action := range actions {
			if action != reverse {
				filtered = append(filtered, action)
			}
		}
		actions = filtered
	}
	return actions
}

// Successor implements game.State.
//
// It panics if the match is already over or if the action is not legal.
func (s *State) Successor(agent int, action game.Action) game.State {
	return s.Act(agent, action)
}

// Act is like Successor, but returns the concrete type.
func (s *State) Act(agent int, action game.Action) *State {
	s.checkAgent(agent)
	if s.win || s.lose {
		exceptions.Panicf("maze: agent %d can't act (%s), match is already over", agent, action)
	}
	if !s.isLegal(agent, action) {
		exceptions.Panicf("maze: illegal action %s for agent %d at %s", action, agent, s.agents[agent].pos)
	}
	next := s.clone()
	a := &next.agents[agent]
	a.pos = a.pos.Add(action.Delta())
	a.dir = action

	if agent == game.PacmanIndex {
		next.MoveNumber++
		next.score -= TimePenalty
		if next.food.Has(a.pos) {
			next.food = next.food.Without(a.pos)
			next.score += FoodScore
			if len(next.food) == 0 {
				next.score += WinScore
				next.win = true
			}
		}
		if next.capsules.Has(a.pos) {
			next.capsules = next.capsules.Without(a.pos)
			for ii := 1; ii < len(next.agents); ii++ {
				next.agents[ii].scared = ScaredDuration
			}
		}
		for ghost := 1; ghost < len(next.agents); ghost++ {
			next.checkCollision(ghost)
		}
	} else {
		if a.scared > 0 {
			a.scared--
		}
		next.checkCollision(agent)
	}
	return next
}

func (s *State) isLegal(agent int, action game.Action) bool {
	for _, legal := range s.LegalActions(agent) {
		if legal == action {
			return true
		}
	}
	return false
}

// checkCollision between Pacman and the given ghost, and updates the state accordingly.
func (s *State) checkCollision(ghost int) {
	g := &s.agents[ghost]
	if g.pos != s.agents[game.PacmanIndex].pos {
		return
	}
	if g.scared > 0 {
		s.score += EatGhostScore
		g.pos = s.layout.ghostStarts[ghost-1]
		g.dir = game.Stop
		g.scared = 0
		return
	}
	if !s.win {
		s.score -= LoseScore
		s.lose = true
	}
}

func (s *State) clone() *State {
	next := *s
	next.agents = make([]agentState, len(s.agents))
	copy(next.agents, s.agents)
	return &next
}

// IsWin implements game.State.
func (s *State) IsWin() bool { return s.win }

// IsLose implements game.State.
func (s *State) IsLose() bool { return s.lose }

// NumAgents implements game.State.
func (s *State) NumAgents() int { return len(s.agents) }

// Score implements game.State.
func (s *State) Score() float32 { return s.score }

// Position implements game.Board.
func (s *State) Position(agent int) game.Pos {
	s.checkAgent(agent)
	return s.agents[agent].pos
}

// Direction returns the last direction the agent moved in, or game.Stop.
func (s *State) Direction(agent int) game.Action {
	s.checkAgent(agent)
	return s.agents[agent].dir
}

// ScaredTimer implements game.Board.
func (s *State) ScaredTimer(agent int) int {
	s.checkAgent(agent)
	return s.agents[agent].scared
}

func comparePos(a, b game.Pos) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// Food implements game.Board. Positions are sorted in reading order.
func (s *State) Food() []game.Pos {
	return s.food.SortedFunc(comparePos)
}

// HasFood returns whether there is food at pos.
func (s *State) HasFood(pos game.Pos) bool {
	return s.food.Has(pos)
}

// Capsules implements game.Board. Positions are sorted in reading order.
func (s *State) Capsules() []game.Pos {
	return s.capsules.SortedFunc(comparePos)
}

// HasCapsule returns whether there is a capsule at pos.
func (s *State) HasCapsule(pos game.Pos) bool {
	return s.capsules.Has(pos)
}

// AgentAt returns the index of the first agent at pos, or -1 if there is none.
// Pacman takes precedence.
func (s *State) AgentAt(pos game.Pos) int {
	for ii, a := range s.agents {
		if a.pos == pos {
			return ii
		}
	}
	return -1
}

// String renders the maze in the same format accepted by ParseLayout. Scared ghosts
// are rendered as 'S'.
func (s *State) String() string {
	var sb strings.Builder
	for y := range s.layout.Height {
		for x := range s.layout.Width {
			sb.WriteByte(s.cellChar(game.Pos{X: x, Y: y}))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Score: %g", s.score)
	return sb.String()
}

func (s *State) cellChar(pos game.Pos) byte {
	if s.layout.IsWall(pos) {
		return WallChar
	}
	if agent := s.AgentAt(pos); agent >= 0 {
		if agent == game.PacmanIndex {
			return PacmanChar
		}
		if s.agents[agent].scared > 0 {
			return 'S'
		}
		return GhostChar
	}
	if s.food.Has(pos) {
		return FoodChar
	}
	if s.capsules.Has(pos) {
		return CapsuleChar
	}
	return EmptyChar
}
