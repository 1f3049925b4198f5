package weiqi

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// DumpSubtree prints node and its children down to thres visits, a debug
// aid for tsdebug. Grounded on the reference engine's ui.py dump_subtree.
// raveEquiv should be the engine's actual Config.RaveEquiv, so the printed
// urgency figures match what the search itself used to pick moves.
func DumpSubtree(w io.Writer, n int, node *TreeNode, thres float64, indent int, recurse bool, raveEquiv float64) {
	rave := math.NaN()
	if node.AV > 0 {
		rave = float64(node.AW) / float64(node.AV)
	}
	fmt.Fprintf(w, "%s+- %s %.3f (%d/%d, prior %.0f/%.0f, rave %d/%d=%.3f, urgency %.3f)\n",
		strings.Repeat(" ", indent), StrCoord(n, node.Pos.Last), node.Winrate(),
		node.W, node.V, node.PW, node.PV, node.AW, node.AV, rave, node.RaveUrgency(raveEquiv))
	if !recurse {
		return
	}
	children := append([]*TreeNode(nil), node.Children...)
	sort.Slice(children, func(i, j int) bool { return children[i].V > children[j].V })
	for _, child := range children {
		if float64(child.V) >= thres {
			DumpSubtree(w, n, child, thres, indent+3, true, raveEquiv)
		}
	}
}

// PrintTreeSummary prints a one-line progress summary: best winrate so far,
// the principal variation, and the top candidate moves.
func PrintTreeSummary(w io.Writer, n int, tree *TreeNode, sims int) {
	best := append([]*TreeNode(nil), tree.Children...)
	sort.Slice(best, func(i, j int) bool { return best[i].V > best[j].V })
	if len(best) > 5 {
		best = best[:5]
	}

	var seq []Coord
	node := tree
	for node != nil {
		seq = append(seq, node.Pos.Last)
		node = node.BestMove()
	}
	if len(seq) > 6 {
		seq = seq[:6]
	}
	var seqStrs []string
	for _, c := range seq[1:] {
		seqStrs = append(seqStrs, StrCoord(n, c))
	}

	var candStrs []string
	for _, cand := range best {
		candStrs = append(candStrs, fmt.Sprintf("%s(%.3f)", StrCoord(n, cand.Pos.Last), cand.Winrate()))
	}

	bestWinrate := math.NaN()
	if len(best) > 0 {
		bestWinrate = best[0].Winrate()
	}
	fmt.Fprintf(w, "[%4d] winrate %.3f | seq %s | can %s\n",
		sims, bestWinrate, strings.Join(seqStrs, " "), strings.Join(candStrs, " "))
}
