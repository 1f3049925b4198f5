// Command weiqi plays Go on a fixed board size using Monte Carlo tree
// search with RAVE. Run with no arguments for an interactive text-mode
// game, or see the subcommands below for GTP mode and benchmarking.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/corwin-dev/weiqi"
)

const (
	spatialDictPath   = "patterns.spat"
	largePatternsPath = "patterns.prob"
)

func main() {
	cfg := weiqi.NewConfig()
	loadPatternFiles(cfg)

	action := "default"
	if len(os.Args) >= 2 {
		action = os.Args[1]
	}

	switch action {
	case "default":
		weiqi.NewConsole(cfg, false, os.Stdin, os.Stdout).Run()
	case "white":
		weiqi.NewConsole(cfg, true, os.Stdin, os.Stdout).Run()
	case "gtp":
		gtp := weiqi.NewGTP(cfg, os.Stdout, os.Stderr)
		if err := gtp.Run(os.Stdin); err != nil {
			log.Fatal(err)
		}
	case "mcdebug":
		runMcdebug(cfg)
	case "mcbenchmark":
		runMcbenchmark(cfg, 20)
	case "tsbenchmark":
		runTsbenchmark(cfg, false)
	case "tsdebug":
		runTsbenchmark(cfg, true)
	default:
		fmt.Fprintln(os.Stderr, "Unknown action")
		os.Exit(1)
	}
}

// loadPatternFiles loads the spatial-pattern dictionary and large-pattern
// probability table if present next to the binary's working directory.
// Missing files are not fatal: the engine plays much weaker without them,
// so we log a warning and continue with empty stores, matching the
// reference engine's own graceful degradation.
func loadPatternFiles(cfg *weiqi.Config) {
	if f, err := os.Open(spatialDictPath); err == nil {
		defer f.Close()
		cfg.Log.Println("Loading pattern spatial dictionary...")
		if err := cfg.Patterns.LoadSpatialDict(f); err != nil {
			cfg.Log.Printf("warning: %v", errors.Wrap(err, "loading spatial dictionary"))
		}
	} else {
		cfg.Log.Printf("warning: cannot load pattern files: %v; will be much weaker, "+
			"consider lowering ExpandVisits", err)
	}

	if f, err := os.Open(largePatternsPath); err == nil {
		defer f.Close()
		cfg.Log.Println("Loading large pattern probabilities...")
		if err := cfg.Patterns.LoadProbabilities(f); err != nil {
			cfg.Log.Printf("warning: %v", errors.Wrap(err, "loading large pattern probabilities"))
		}
	} else {
		cfg.Log.Printf("warning: cannot load pattern files: %v; will be much weaker, "+
			"consider lowering ExpandVisits", err)
	}
}

func runMcdebug(cfg *weiqi.Config) {
	pos := weiqi.NewEmptyPosition(cfg.BoardSize, cfg.Komi)
	w := pos.Board.W
	amaf := make([]int, w*w)
	result := weiqi.Mcplayout(cfg, cfg.Rand, pos, amaf)
	fmt.Println(result.Score)
}

func runMcbenchmark(cfg *weiqi.Config, rounds int) {
	total := 0.0
	for i := 0; i < rounds; i++ {
		pos := weiqi.NewEmptyPosition(cfg.BoardSize, cfg.Komi)
		w := pos.Board.W
		amaf := make([]int, w*w)
		total += weiqi.Mcplayout(cfg, cfg.Rand, pos, amaf).Score
	}
	fmt.Println(total / float64(rounds))
}

func runTsbenchmark(cfg *weiqi.Config, debug bool) {
	root := weiqi.NewTreeNode(weiqi.NewEmptyPosition(cfg.BoardSize, cfg.Komi))
	w := root.Pos.Board.W
	ownerMap := make([]float64, w*w)

	start := time.Now()
	best := weiqi.TreeSearch(cfg, root, ownerMap)
	elapsed := time.Since(start)

	if debug {
		weiqi.DumpSubtree(os.Stderr, cfg.BoardSize, root, float64(cfg.NSims)/50, 0, true, cfg.RaveEquiv)
		weiqi.PrintTreeSummary(os.Stderr, cfg.BoardSize, root, cfg.NSims)
	}
	best.Pos.PrintPos(os.Stdout, ownerMap)
	if debug {
		return
	}
	cpus := cfg.Workers
	speed := float64(cfg.NSims) / (elapsed.Seconds() * float64(cpus))
	fmt.Printf("Tree search with %d playouts took %.3fs with %d threads; speed is %.3f playouts/thread/s\n",
		cfg.NSims, elapsed.Seconds(), cpus, speed)
}
