package game

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Pos{3, 4}.Distance(Pos{3, 4}))
	assert.Equal(t, 7, Pos{0, 0}.Distance(Pos{3, 4}))
	assert.Equal(t, 7, Pos{3, 4}.Distance(Pos{0, 0}))
	assert.Equal(t, 4, Pos{-1, 2}.Distance(Pos{1, 0}))
}

func TestActions(t *testing.T) {
	start := Pos{2, 2}
	for _, a := range Directions {
		moved := start.Add(a.Delta())
		assert.Equal(t, 1, start.Distance(moved), "action %s", a)
		assert.Equal(t, start, moved.Add(a.Reverse().Delta()), "action %s", a)
	}
	assert.Equal(t, Pos{2, 1}, start.Add(North.Delta()))
	assert.Equal(t, start, start.Add(Stop.Delta()))
	assert.Equal(t, Stop, Stop.Reverse())
	assert.Equal(t, "<none>", NoAction.String())
}
