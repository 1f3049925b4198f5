package weiqi

import "math"

// TreeNode is a Monte Carlo tree node. v is visit count, w is win count for
// the player who just moved into this node (so winrate is w/v). pv/pw are
// prior pseudo-visits/pseudo-wins folded in at Expand time to bias search
// towards sensible moves before real statistics accumulate. av/aw are AMAF
// ("all moves as first") counts used by the RAVE tree policy. Children is
// nil for unexpanded leaves.
type TreeNode struct {
	Pos      Position
	V        int
	W        int
	PV       float64
	PW       float64
	AV       int
	AW       int
	Children []*TreeNode
}

// NewTreeNode returns a fresh, unexpanded node for pos, with the standard
// "0.5 prior" even-odds prior weight.
func NewTreeNode(pos Position) *TreeNode {
	return &TreeNode{
		Pos: pos,
		PV:  PriorEven,
		PW:  PriorEven / 2,
	}
}

// Expand adds and initializes children of a leaf node, biasing each
// child's prior towards moves the tactical heuristics consider sensible:
// captures, 3x3 pattern matches, common-fate-graph locality to the last
// move, empty-area opening sanity, self-atari avoidance, and large-scale
// pattern probability.
func (n *TreeNode) Expand(cfg *Config) {
	var cfgMap []int
	if n.Pos.Last != NoCoord {
		cfgMap = CfgDistances(n.Pos.Board, n.Pos.Last)
	}

	n.Children = nil
	childSet := map[Coord]*TreeNode{}

	for pm := range GenPlayoutMoves(cfg.Pat3, cfg.Rand, n.Pos, wholeBoardRange(n.Pos.Board.N, n.Pos.Board.W), cfg.Probs, true) {
		pos2, ok := n.Pos.Move(pm.Coord)
		if !ok {
			continue
		}
		node, exists := childSet[pos2.Last]
		if !exists {
			node = NewTreeNode(pos2)
			n.Children = append(n.Children, node)
			childSet[pos2.Last] = node
		}

		switch {
		case isCaptureKind(pm.Kind):
			group := captureGroupCoord(pm.Kind)
			if n.Pos.Board.Floodfill(group).Count(FloodMark) > 1 {
				node.PV += PriorCaptureMany
				node.PW += PriorCaptureMany
			} else {
				node.PV += PriorCaptureOne
				node.PW += PriorCaptureOne
			}
		case pm.Kind == "pat3":
			node.PV += PriorPat3
			node.PW += PriorPat3
		}
	}

	for _, node := range n.Children {
		c := node.Pos.Last

		if cfgMap != nil && cfgMap[c]-1 >= 0 && cfgMap[c]-1 < len(PriorCFG) {
			node.PV += PriorCFG[cfgMap[c]-1]
			node.PW += PriorCFG[cfgMap[c]-1]
		}

		height := n.Pos.Board.LineHeight(c)
		if height <= 2 && n.Pos.Board.EmptyArea(c, 3) {
			if height <= 1 {
				node.PV += PriorEmptyArea
			}
			if height == 2 {
				node.PV += PriorEmptyArea
				node.PW += PriorEmptyArea
			}
		}

		if _, ds := FixAtari(node.Pos, c, true, true, false); len(ds) > 0 {
			node.PV += PriorSelfatari
		}

		if prob, ok := cfg.Patterns.LargePatternProbability(n.Pos.Board, c); ok && prob > 0.001 {
			patternPrior := math.Sqrt(prob)
			node.PV += patternPrior * PriorLargePattern
			node.PW += patternPrior * PriorLargePattern
		}
	}

	if len(n.Children) == 0 {
		n.Children = append(n.Children, NewTreeNode(n.Pos.PassMove()))
	}
}

// RaveUrgency blends the plain expectation (w+pw)/(v+pv) with the RAVE/AMAF
// expectation aw/av, weighted by a Silver-style beta that shifts trust
// towards real statistics as visit counts grow.
func (n *TreeNode) RaveUrgency(raveEquiv float64) float64 {
	v := float64(n.V) + n.PV
	expectation := (float64(n.W) + n.PW) / v
	if n.AV == 0 {
		return expectation
	}
	raveExpectation := float64(n.AW) / float64(n.AV)
	av := float64(n.AV)
	beta := av / (av + v + v*av/raveEquiv)
	return beta*raveExpectation + (1-beta)*expectation
}

// Winrate returns w/v, or NaN if the node has never been visited.
func (n *TreeNode) Winrate() float64 {
	if n.V == 0 {
		return math.NaN()
	}
	return float64(n.W) / float64(n.V)
}

// BestMove returns the most-simulated child, the standard "robust child"
// move choice, or nil if the node has no children.
func (n *TreeNode) BestMove() *TreeNode {
	if len(n.Children) == 0 {
		return nil
	}
	best := n.Children[0]
	for _, c := range n.Children[1:] {
		if c.V > best.V {
			best = c
		}
	}
	return best
}

// wholeBoardRange reproduces the reference engine's range(N, (N+1)*W)
// sweep used to seed Expand with every on-board heuristic candidate.
func wholeBoardRange(n, w int) []Coord {
	coords := make([]Coord, 0, (n+1)*w-n)
	for c := n; c < (n+1)*w; c++ {
		coords = append(coords, Coord(c))
	}
	return coords
}

func isCaptureKind(kind string) bool {
	return len(kind) >= 7 && kind[:7] == "capture"
}

func captureGroupCoord(kind string) Coord {
	var c int
	i := 8
	for i < len(kind) {
		c = c*10 + int(kind[i]-'0')
		i++
	}
	return Coord(c)
}
