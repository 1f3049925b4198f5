package weiqi

import (
	"context"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// TreeDescend walks from root to a leaf, picking the highest-RAVE-urgency
// child at each step (ties broken by shuffling first, so repeated equal
// urgencies don't always resolve the same way), expanding any newly
// reached leaf once it has accumulated enough descents. Visit counts are
// bumped on the way down (the "virtual loss" spec.md's concurrency model
// relies on to keep parallel workers from piling onto the same leaf). It
// returns the descended path and a fresh AMAF scratchpad recording which
// player first played each point along the way.
func TreeDescend(cfg *Config, root *TreeNode) ([]*TreeNode, []int) {
	root.V++
	nodes := []*TreeNode{root}
	w := root.Pos.Board.W
	amaf := make([]int, w*w)
	passes := 0

	for nodes[len(nodes)-1].Children != nil && passes < 2 {
		cur := nodes[len(nodes)-1]
		children := append([]*TreeNode(nil), cur.Children...)
		cfg.Rand.Shuffle(len(children), func(i, j int) { children[i], children[j] = children[j], children[i] })

		best := children[0]
		bestUrgency := best.RaveUrgency(cfg.RaveEquiv)
		for _, ch := range children[1:] {
			if u := ch.RaveUrgency(cfg.RaveEquiv); u > bestUrgency {
				bestUrgency = u
				best = ch
			}
		}
		nodes = append(nodes, best)

		if best.Pos.Last == NoCoord {
			passes++
		} else {
			passes = 0
			if amaf[best.Pos.Last] == 0 {
				if cur.Pos.Ply%2 == 0 {
					amaf[best.Pos.Last] = 1
				} else {
					amaf[best.Pos.Last] = -1
				}
			}
		}

		best.V++
		if best.Children == nil && best.V >= cfg.ExpandVisits {
			best.Expand(cfg)
		}
	}
	return nodes, amaf
}

// TreeUpdate stores one playout's result back along the descended path:
// win counts for the nodes actually visited, and AMAF win/visit counts for
// every sibling move that was also played (by the same color) somewhere
// later in that same playout, which is the RAVE mechanism's whole point.
func TreeUpdate(nodes []*TreeNode, amaf []int, score float64) {
	for i := len(nodes) - 1; i >= 0; i-- {
		node := nodes[i]
		if score < 0 {
			node.W++
		}
		amafValue := 1
		if node.Pos.Ply%2 != 0 {
			amafValue = -1
		}
		if node.Children != nil {
			for _, child := range node.Children {
				if child.Pos.Last == NoCoord {
					continue
				}
				if amaf[child.Pos.Last] == amafValue {
					if score > 0 {
						child.AW++
					}
					child.AV++
				}
			}
		}
		score = -score
	}
}

type playoutJob struct {
	nodes []*TreeNode
	amaf  []int
}

type playoutOutcome struct {
	nodes  []*TreeNode
	result PlayoutResult
}

// TreeSearch runs cfg.NSims (or fewer, on early stop) MCTS iterations from
// root using a fixed pool of stateless workers: the coordinator (this
// goroutine) owns the tree exclusively and only ever hands workers an
// immutable Position plus a scratch AMAF slice, matching spec.md §5's "no
// shared mutable state" concurrency model. Returns the most-visited child
// of root (the move to play) and fills ownerMap with the averaged
// territory estimate accumulated across every playout.
func TreeSearch(cfg *Config, root *TreeNode, ownerMap []float64) *TreeNode {
	if root.Children == nil {
		root.Expand(cfg)
	}

	n := cfg.NSims
	capacity := cfg.Workers * 2
	jobs := make(chan playoutJob, capacity)
	results := make(chan playoutOutcome, capacity)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Workers; i++ {
		workerRand := rand.New(rand.NewSource(cfg.Rand.Int63()))
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case job, ok := <-jobs:
					if !ok {
						return nil
					}
					leaf := job.nodes[len(job.nodes)-1]
					result := Mcplayout(cfg, workerRand, leaf.Pos, job.amaf)
					select {
					case results <- playoutOutcome{job.nodes, result}:
					case <-ctx.Done():
						return nil
					}
				}
			}
		})
	}

	dispatched := 0
	inFlight := 0
	completed := 0

	for completed < n {
	fillLoop:
		for inFlight < capacity && dispatched < n {
			nodes, amaf := TreeDescend(cfg, root)
			select {
			case jobs <- playoutJob{nodes: nodes, amaf: amaf}:
				dispatched++
				inFlight++
			default:
				break fillLoop
			}
		}

		outcome := <-results
		inFlight--
		completed++
		TreeUpdate(outcome.nodes, outcome.result.AmafMap, outcome.result.Score)
		for i, v := range outcome.result.OwnerMap {
			ownerMap[i] += v
		}

		if cfg.ReportPeriod > 0 && completed%cfg.ReportPeriod == 0 {
			best := root.BestMove()
			cfg.Log.Printf("[%4d] winrate %.3f", completed, best.Winrate())
		}

		best := root.BestMove()
		wr := best.Winrate()
		if !math.IsNaN(wr) {
			frac := float64(completed) / float64(n)
			if (frac > 0.05 && wr > FastPlay5Thres) || (frac > 0.2 && wr > FastPlay20Thres) {
				break
			}
		}
	}

	close(jobs)
	_ = g.Wait()

	if completed > 0 {
		for i := range ownerMap {
			ownerMap[i] /= float64(completed)
		}
	}
	return root.BestMove()
}
