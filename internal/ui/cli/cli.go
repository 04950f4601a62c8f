// Package cli implements a command-line UI for Pacman matches.
package cli

import (
	"bytes"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/maze"
	"github.com/janpfeifer/pacmanGo/internal/matches"
	"golang.org/x/term"
	"io"
	"os"
	"regexp"
	"strings"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

// UI prints the matches to a terminal (or any io.Writer).
type UI struct {
	color, clearScreen bool
	w                  io.Writer

	// Width of the terminal used to center the output. If 0 it is read from the terminal,
	// if it is one.
	Width int
}

// New creates a UI that prints to os.Stdout.
func New(color bool, clearScreen bool) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		w:           os.Stdout,
	}
}

// WithWriter sets where the UI prints to.
func (ui *UI) WithWriter(w io.Writer) *UI {
	ui.w = w
	return ui
}

func (ui *UI) terminalWidth() int {
	if ui.Width > 0 {
		return ui.Width
	}
	if f, ok := ui.w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil {
			return width
		}
	}
	return 0
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.w)
			continue
		}
		_, _ = fmt.Fprintf(ui.w, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// Print the state with a header.
func (ui *UI) Print(matchName string, state *maze.State) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.w, "\033c")
	}
	if ui.color {
		_, _ = fmt.Fprint(ui.w, "\033[37;03;1m")
	}
	_, _ = fmt.Fprintf(ui.w, "\n%s, move #%d%s\n\n", matchName, state.MoveNumber, ui.colorEnd())
	ui.PrintMaze(state)
	_, _ = fmt.Fprintln(ui.w)
}

// PrintMaze prints the maze centered, followed by the score.
func (ui *UI) PrintMaze(state *maze.State) {
	var buf bytes.Buffer
	l := state.Layout()
	for y := range l.Height {
		for x := range l.Width {
			buf.WriteString(ui.cell(state, game.Pos{X: x, Y: y}))
		}
		buf.WriteByte('\n')
	}
	_, _ = fmt.Fprintf(&buf, "Score: %g\n", state.Score())
	ui.printCentered(buf.String())
}

// cell returns the (possibly colored) character of the maze at pos.
func (ui *UI) cell(state *maze.State, pos game.Pos) string {
	l := state.Layout()
	switch {
	case l.IsWall(pos):
		return ui.colored("\033[34;44m", maze.WallChar)
	case state.AgentAt(pos) == game.PacmanIndex:
		return ui.colored("\033[33;1m", maze.PacmanChar)
	case state.AgentAt(pos) > 0:
		if state.ScaredTimer(state.AgentAt(pos)) > 0 {
			return ui.colored("\033[36;1m", 'S')
		}
		return ui.colored("\033[31;1m", maze.GhostChar)
	case state.HasFood(pos):
		return ui.colored("\033[37m", maze.FoodChar)
	case state.HasCapsule(pos):
		return ui.colored("\033[35;1m", maze.CapsuleChar)
	}
	return string(maze.EmptyChar)
}

func (ui *UI) colored(start string, c byte) string {
	if !ui.color {
		return string(c)
	}
	return start + string(c) + ui.colorEnd()
}

func (ui *UI) colorEnd() string {
	if !ui.color {
		return ""
	}
	return "\033[39;49;0m"
}

func (ui *UI) banner(background, text string) string {
	if !ui.color {
		return "*** " + text + " ***"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color("0")).
		Padding(1, 2).
		Render("*** " + text + " ***")
}

// PrintResult prints the outcome of a match.
func (ui *UI) PrintResult(r matches.Result) {
	var text, background string
	switch {
	case r.Win:
		text, background = fmt.Sprintf("PACMAN WINS!! Score %g in %d moves", r.Score, r.Moves), "10"
	case r.Lose:
		text, background = fmt.Sprintf("PACMAN LOSES: Score %g in %d moves", r.Score, r.Moves), "9"
	default:
		text, background = fmt.Sprintf("TIMEOUT: Score %g after %d moves", r.Score, r.Moves), "13"
	}
	_, _ = fmt.Fprintln(ui.w)
	ui.printCentered(ui.banner(background, text))
	_, _ = fmt.Fprintln(ui.w)
}

// PrintSummary prints the aggregate results of a series of matches.
func (ui *UI) PrintSummary(s *matches.Summary) {
	_, _ = fmt.Fprintln(ui.w)
	ui.printCentered(ui.banner("12", fmt.Sprintf("%d wins out of %d matches (%.1f%%), average score %.1f",
		s.Wins, s.Played, 100*s.WinRate(), s.AverageScore())))
	_, _ = fmt.Fprintln(ui.w)
}
