package cli

import (
	"bytes"
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/maze"
	"github.com/janpfeifer/pacmanGo/internal/matches"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestPrintMaze(t *testing.T) {
	l, err := maze.ParseLayout("test", `
%%%%%
%Po.%
%G  %
%%%%%`)
	require.NoError(t, err)
	state := maze.New(l, -1).Act(game.PacmanIndex, game.East)

	var buf bytes.Buffer
	ui := New(false, false).WithWriter(&buf)
	ui.PrintMaze(state)
	assert.Equal(t, "%%%%%\n% P.%\n%S  %\n%%%%%\nScore: -1\n", buf.String())

	// Centered in a 15 characters wide terminal: the widest line is the score.
	buf.Reset()
	ui.Width = 15
	ui.PrintMaze(state)
	assert.True(t, strings.HasPrefix(buf.String(), "   %%%%%\n"), "got %q", buf.String())

	// Colors don't change the displayed width.
	buf.Reset()
	ui = New(true, false).WithWriter(&buf)
	ui.PrintMaze(state)
	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, lines[1], "\033[")
	assert.Equal(t, 5, displayWidth(lines[1]))
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	ui := New(false, false).WithWriter(&buf)
	ui.PrintResult(matches.Result{Win: true, Score: 518, Moves: 2})
	assert.Contains(t, buf.String(), "PACMAN WINS!! Score 518 in 2 moves")

	buf.Reset()
	ui.PrintResult(matches.Result{Lose: true, Score: -501, Moves: 1})
	assert.Contains(t, buf.String(), "PACMAN LOSES")

	buf.Reset()
	ui.PrintResult(matches.Result{Score: -5, Moves: 5})
	assert.Contains(t, buf.String(), "TIMEOUT")
}
