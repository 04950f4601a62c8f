package players

import (
	"github.com/janpfeifer/pacmanGo/internal/game"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"k8s.io/klog/v2"
)

// SearcherPlayer is the standard set up for an AI: a searcher, configured with its evaluator
// and max depth.
// It implements the Player interface.
type SearcherPlayer struct {
	Searcher searchers.Searcher
}

// Assert that SearcherPlayer is a Player.
var _ Player = &SearcherPlayer{}

// NewSearcherPlayer returns a Player that plays the actions chosen by s.
func NewSearcherPlayer(s searchers.Searcher) *SearcherPlayer {
	return &SearcherPlayer{Searcher: s}
}

// Play implements the Player interface: it chooses an action given a state.
func (p *SearcherPlayer) Play(state game.State) (action game.Action, score float32) {
	action, score = p.Searcher.Search(state)
	if klog.V(2).Enabled() {
		klog.Infof("AI (%s) playing %s, score=%.3f", p.Searcher, action, score)
	}
	return
}

// String implements the Player interface.
func (p *SearcherPlayer) String() string {
	return p.Searcher.String()
}
