// pacman plays Pacman matches between an AI player and the ghosts, on the terminal.
//
// Examples:
//
//	$ pacman -layout=smallClassic -pacman=expectimax,depth=3,eval=better -ghosts=directional
//	$ pacman -layout=trappedClassic -pacman=minimax,depth=3 -num_matches=100 -quiet
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/pacmanGo/internal/evaluators"
	"github.com/janpfeifer/pacmanGo/internal/ghosts"
	"github.com/janpfeifer/pacmanGo/internal/maze"
	"github.com/janpfeifer/pacmanGo/internal/matches"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/janpfeifer/pacmanGo/internal/profilers"
	"github.com/janpfeifer/pacmanGo/internal/ui/cli"
	"github.com/janpfeifer/pacmanGo/internal/ui/spinning"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	flagLayout = flag.String("layout", "minimaxClassic", "Name of a built-in layout ("+
		strings.Join(maze.LayoutNames(), ", ")+") or path to a layout file.")
	flagPacman = flag.String("pacman", "", "Pacman AI configuration, e.g. \"expectimax,depth=3,eval=better\". "+
		"Algorithms: "+strings.Join(players.Algorithms(), ", ")+". Evaluators: "+strings.Join(evaluators.Names(), ", ")+
		". Default is \""+players.DefaultPlayerConfig+"\".")
	flagGhosts = flag.String("ghosts", ghosts.Default, "Ghosts policy configuration: "+
		strings.Join(ghosts.Names(), " or ")+", e.g. \"directional,attack=0.8,flee=0.8\".")
	flagNumGhosts   = flag.Int("num_ghosts", -1, "Max number of ghosts. If < 0 all the ghosts in the layout are used.")
	flagNumMatches  = flag.Int("num_matches", 1, "Number of matches to play.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagMaxMoves   = flag.Int("max_moves", matches.DefaultMaxMoves, "Max Pacman moves before the match is stopped.")
	flagPrintSteps = flag.Bool("print_steps", false, "Print the maze at each step. "+
		"Very verbose, and you probably want to set -parallelism=1.")
	flagQuiet = flag.Bool("quiet", false, "Only print the summary of the matches.")
	flagColor = flag.Bool("color", true, "Use colors in the output.")
	flagSeed  = flag.Uint64("seed", 0, "Seed for the ghosts random moves. If 0 a random seed is used.")
)

func main() {
	klog.InitFlags(nil)
	prof := profilers.AddFlags(nil)
	flag.Parse()

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 5*time.Second)
	defer cancel()

	config, err := newConfig()
	if err != nil {
		klog.Fatalf("Invalid configuration: %v", err)
	}
	if err = prof.Start(ctx); err != nil {
		klog.Fatalf("Failed to start profilers: %+v", err)
	}
	defer prof.Stop()
	must.M(run(ctx, config))
}

// loadLayout by name, or from a file.
func loadLayout(name string) (*maze.Layout, error) {
	if l, err := maze.LayoutByName(name); err == nil {
		return l, nil
	}
	contents, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "layout %q is neither built-in nor a readable file", name)
	}
	return maze.ParseLayout(name, string(contents))
}

func newConfig() (*matches.Config, error) {
	l, err := loadLayout(*flagLayout)
	if err != nil {
		return nil, err
	}
	seed := *flagSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	klog.V(1).Infof("Layout %q, ghosts %q, seed %d", l.Name, *flagGhosts, seed)

	// Fail early on invalid configurations, before starting the matches.
	if _, err = players.New(*flagPacman); err != nil {
		return nil, err
	}
	if _, err = ghosts.New(*flagGhosts, nil); err != nil {
		return nil, err
	}
	return &matches.Config{
		Layout:    l,
		NumGhosts: *flagNumGhosts,
		MaxMoves:  *flagMaxMoves,
		NewPacman: func(int) (players.Player, error) { return players.New(*flagPacman) },
		NewGhost: func(matchIdx, agent int) (ghosts.Ghost, error) {
			return ghosts.New(*flagGhosts, rand.New(rand.NewPCG(seed, uint64(matchIdx)<<8+uint64(agent))))
		},
	}, nil
}

func run(ctx context.Context, config *matches.Config) error {
	ui := cli.New(*flagColor, false)
	var muUI sync.Mutex
	if *flagPrintSteps && !*flagQuiet {
		config.OnMove = func(matchIdx int, state *maze.State) {
			muUI.Lock()
			defer muUI.Unlock()
			ui.Print(fmt.Sprintf("Match-%05d", matchIdx), state)
		}
	}

	var spinner *spinning.Spinner
	if *flagQuiet {
		spinner = spinning.New(ctx, os.Stdout, spinning.ThemeAscii, 500*time.Millisecond)
	}
	summary, err := matches.RunAll(ctx, config, *flagNumMatches, *flagParallelism,
		func(s *matches.Summary, r matches.Result) {
			if *flagQuiet {
				return
			}
			muUI.Lock()
			defer muUI.Unlock()
			if *flagNumMatches == 1 {
				ui.Print(fmt.Sprintf("Match-%05d", r.MatchIdx), r.Final)
				ui.PrintResult(r)
				return
			}
			fmt.Printf("%s\n\t%s\n", r, s)
		})
	if spinner != nil {
		spinner.Done()
	}
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		if summary.Played == 0 {
			return nil
		}
		err = nil
	}
	if err != nil {
		return err
	}
	if summary.Played > 1 || *flagQuiet {
		ui.PrintSummary(summary)
	}
	return nil
}
