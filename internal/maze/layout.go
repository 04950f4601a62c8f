package maze

import (
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/pkg/errors"
	"strings"
)

// Layout is the static part of a maze: walls, initial food and capsules, and the start
// positions of the agents. It is shared (read-only) by all states of a match.
type Layout struct {
	Name          string
	Width, Height int

	walls       []bool // Indexed by y*Width+x.
	food        generics.Set[game.Pos]
	capsules    generics.Set[game.Pos]
	pacmanStart game.Pos
	ghostStarts []game.Pos
}

// Characters used in the layout text.
const (
	WallChar    = '%'
	FoodChar    = '.'
	CapsuleChar = 'o'
	PacmanChar  = 'P'
	GhostChar   = 'G'
	EmptyChar   = ' '
)

// ParseLayout parses a maze given as text, one row per line. Leading and trailing empty
// lines are ignored, all rows must have the same width.
//
// There must be exactly one Pacman. Ghosts are numbered in reading order (top to bottom,
// left to right).
func ParseLayout(name, text string) (*Layout, error) {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, errors.Errorf("layout %q is empty", name)
	}
	l := &Layout{
		Name:     name,
		Width:    len(lines[0]),
		Height:   len(lines),
		food:     generics.MakeSet[game.Pos](),
		capsules: generics.MakeSet[game.Pos](),
	}
	l.walls = make([]bool, l.Width*l.Height)
	numPacman := 0
	for y, line := range lines {
		if len(line) != l.Width {
			return nil, errors.Errorf("layout %q: row %d has width %d, expected %d", name, y, len(line), l.Width)
		}
		for x, c := range []byte(line) {
			pos := game.Pos{X: x, Y: y}
			switch c {
			case WallChar:
				l.walls[y*l.Width+x] = true
			case FoodChar:
				l.food.Insert(pos)
			case CapsuleChar:
				l.capsules.Insert(pos)
			case PacmanChar:
				l.pacmanStart = pos
				numPacman++
			case GhostChar:
				l.ghostStarts = append(l.ghostStarts, pos)
			case EmptyChar:
				// Nothing.
			default:
				return nil, errors.Errorf("layout %q: invalid character %q at %s", name, c, pos)
			}
		}
	}
	if numPacman != 1 {
		return nil, errors.Errorf("layout %q: expected exactly one Pacman (%q), found %d", name, PacmanChar, numPacman)
	}
	return l, nil
}

// IsWall returns whether there is a wall at pos. Positions outside the maze are walls.
func (l *Layout) IsWall(pos game.Pos) bool {
	if pos.X < 0 || pos.Y < 0 || pos.X >= l.Width || pos.Y >= l.Height {
		return true
	}
	return l.walls[pos.Y*l.Width+pos.X]
}

// NumGhosts returns the number of ghosts defined in the layout.
func (l *Layout) NumGhosts() int {
	return len(l.ghostStarts)
}

// neighbors returns the actions that move from pos into a non-wall position, in the
// order of game.Directions.
func (l *Layout) neighbors(pos game.Pos) (actions []game.Action) {
	for _, a := range game.Directions {
		if !l.IsWall(pos.Add(a.Delta())) {
			actions = append(actions, a)
		}
	}
	return
}

var builtinLayouts = map[string]string{
	"testClassic": `
%%%%%
% . %
%.G.%
% . %
%. .%
%   %
%  .%
%   %
%P .%
%%%%%
`,
	"minimaxClassic": `
%%%%%%%%%
%.P    G%
% %.%G%%%
%G    %%%
%%%%%%%%%
`,
	"trappedClassic": `
%%%%%%%%
%   P G%
%G%%%%%%
%....  %
%%%%%%%%
`,
	"smallClassic": `
%%%%%%%%%%%%%%%%%%%%
%......%G  G%......%
%.%%...%%  %%...%%.%
%.%o.%........%.o%.%
%.%%.%.%%%%%%.%.%%.%
%........P.........%
%%%%%%%%%%%%%%%%%%%%
`,
}

// LayoutNames returns the names of the builtin layouts, sorted.
func LayoutNames() []string {
	return generics.SortedKeys(builtinLayouts)
}

// LayoutByName returns one of the builtin layouts. See LayoutNames.
func LayoutByName(name string) (*Layout, error) {
	text, found := builtinLayouts[name]
	if !found {
		return nil, errors.Errorf("unknown layout %q, valid layouts are: %s", name, strings.Join(LayoutNames(), ", "))
	}
	return ParseLayout(name, text)
}
