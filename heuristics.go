package weiqi

import (
	"fmt"
	"iter"
	"math/rand"
)

// FixAtari is the atari/ladder analysis routine: does the group at c have
// only one liberty, and if so, can it escape (by filling its last liberty
// or capturing a neighboring group) or is it caught? It also recognizes
// exactly-two-liberty groups caught in a working ladder; for those it
// returns false (not in atari) together with the move that continues the
// ladder.
//
// singleptOk skips trying to save one-stone groups. twolibTest additionally
// reads out 2-liberty groups for ladders; twolibEdgeonly restricts that
// read to groups whose two liberties are both on the first line, keeping
// the playout-time cost bounded to the common short ladders.
//
// This is the most involved piece of the tactical layer; treat it as a
// black box if you just want to know "is c safe".
func FixAtari(pos Position, c Coord, singleptOk, twolibTest, twolibEdgeonly bool) (bool, []Coord) {
	board := pos.Board
	fboard := board.Floodfill(c)
	groupSize := fboard.Count(FloodMark)
	if singleptOk && groupSize == 1 {
		return false, nil
	}

	// Find a liberty, mark it, and see if there is another one.
	l, hasLib := fboard.Contact(Empty)
	if !hasLib {
		// No liberty at all (e.g. a completely filled board): nothing to do.
		return false, nil
	}
	fboard = fboard.BoardPut(l, 'L')
	l2, hasLib2 := fboard.Contact(Empty)
	if hasLib2 {
		if twolibTest && groupSize > 1 &&
			(!twolibEdgeonly || (board.LineHeight(l) == 0 && board.LineHeight(l2) == 0)) {
			lBoard := fboard.BoardPut(l2, 'L')
			if _, stillLib := lBoard.Contact(Empty); !stillLib {
				if attack, ok := readLadderAttack(pos, c, l, l2); ok {
					return false, []Coord{attack}
				}
			}
		}
		return false, nil
	}

	// Exactly one liberty left: in atari.
	return fixAtariInAtari(pos, c, l, fboard)
}

// fixAtariInAtari handles a group already found to have exactly one
// liberty l; fboard is the flood-filled board with the group marked '#'
// and l marked 'L', reused here for the counter-capture scan.
func fixAtariInAtari(pos Position, c, l Coord, fboard Board) (bool, []Coord) {
	if pos.Board.At(c) == White {
		// It's the opponent's group: that's enough, no need to check escapes.
		return true, []Coord{l}
	}

	var solutions []Coord

	// Before defending, see if we can counter-capture a neighboring group.
	ccBoard := fboard
	for {
		other, ok := ccBoard.Contact(White)
		if !ok {
			break
		}
		if inAtari, ds := FixAtari(pos, other, false, false, false); inAtari && len(ds) > 0 {
			solutions = append(solutions, ds...)
		}
		ccBoard = ccBoard.BoardPut(other, '%')
	}

	escPos, ok := pos.Move(l)
	if !ok {
		// Oops, suicidal move: no way out via the liberty itself.
		return true, solutions
	}

	fboard2 := escPos.Board.Floodfill(l)
	lNew, hasLib := fboard2.Contact(Empty)
	if !hasLib {
		return true, solutions
	}
	fboard2 = fboard2.BoardPut(lNew, 'L')
	lNew2, hasLib2 := fboard2.Contact(Empty)
	if hasLib2 {
		caughtInLadder := false
		if _, stillLib := fboard2.BoardPut(lNew2, 'L').Contact(Empty); !stillLib {
			if _, attacked := readLadderAttack(escPos, l, lNew, lNew2); attacked {
				caughtInLadder = true
			}
		}
		if len(solutions) > 0 || !caughtInLadder {
			solutions = append(solutions, l)
		}
	}

	return true, solutions
}

// readLadderAttack checks whether a capturable ladder is being pulled out
// at c with liberties l1, l2, returning the move that continues the
// capture if so. This is, in effect, a general two-liberty exhaustive
// capture solver.
func readLadderAttack(pos Position, c, l1, l2 Coord) (Coord, bool) {
	for _, l := range []Coord{l1, l2} {
		posL, ok := pos.Move(l)
		if !ok {
			continue
		}
		// fix_atari recurses back into readLadderAttack; ignore 2-lib
		// groups there since chasing them further isn't worth the time.
		inAtari, escapes := FixAtari(posL, c, false, false, false)
		if inAtari && len(escapes) == 0 {
			return l, true
		}
	}
	return NoCoord, false
}

// CfgDistances returns a board-sized map of common-fate-graph distances
// from c: 0 at c itself, and for each neighbor either the same distance
// (same-color group, contracted to a point) or +1 (crossing a group
// boundary), flood-filled outward. Off-board points stay at -1.
func CfgDistances(board Board, c Coord) []int {
	cfgMap := make([]int, board.W*board.W)
	for i := range cfgMap {
		cfgMap[i] = -1
	}
	cfgMap[c] = 0

	fringe := []Coord{c}
	for len(fringe) > 0 {
		cur := fringe[len(fringe)-1]
		fringe = fringe[:len(fringe)-1]
		for _, d := range board.Neighbors(cur) {
			if board.At(d) == OffBoard {
				continue
			}
			if cfgMap[d] >= 0 && cfgMap[d] <= cfgMap[cur] {
				continue
			}
			before := cfgMap[d]
			if board.At(d) != Empty && board.At(d) == board.At(cur) {
				cfgMap[d] = cfgMap[cur]
			} else {
				cfgMap[d] = cfgMap[cur] + 1
			}
			if before < 0 || before > cfgMap[d] {
				fringe = append(fringe, d)
			}
		}
	}
	return cfgMap
}

// PlayoutMove pairs a suggested coordinate with the heuristic that
// suggested it, for debug tracing and for TreeNode.Expand's per-kind
// prior assignment.
type PlayoutMove struct {
	Coord Coord
	Kind  string
}

// GenPlayoutMoves yields candidate next moves in order of preference:
// first, liberties of any local group in atari (captures); then empty
// points in heuristicSet matching a known 3x3 pattern; finally every legal
// move on the board starting from a random point. heuristicSet is the
// immediate neighborhood of the last two moves during a playout, or the
// whole board when priming tree expansion.
func GenPlayoutMoves(pat3 Pat3Set, rng *rand.Rand, pos Position, heuristicSet []Coord, probs PlayoutProbs, expensiveOK bool) iter.Seq[PlayoutMove] {
	return func(yield func(PlayoutMove) bool) {
		if rng.Float64() <= probs.Capture {
			suggested := map[Coord]bool{}
			for _, c := range heuristicSet {
				p := pos.Board.At(c)
				if p != Black && p != White {
					continue
				}
				_, ds := FixAtari(pos, c, false, true, !expensiveOK)
				shuffled := append([]Coord(nil), ds...)
				rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
				for _, d := range shuffled {
					if !suggested[d] {
						suggested[d] = true
						if !yield(PlayoutMove{d, fmt.Sprintf("capture %d", c)}) {
							return
						}
					}
				}
			}
		}

		if rng.Float64() <= probs.Pat3 {
			suggested := map[Coord]bool{}
			for _, c := range heuristicSet {
				if pos.Board.At(c) != Empty || suggested[c] {
					continue
				}
				if pat3.Contains(pos.Board.Neighborhood33(c)) {
					suggested[c] = true
					if !yield(PlayoutMove{c, "pat3"}) {
						return
					}
				}
			}
		}

		n := pos.Board.N
		x := 1 + rng.Intn(n)
		y := 1 + rng.Intn(n)
		for c := range pos.Moves(y*pos.Board.W + x) {
			if !yield(PlayoutMove{c, "random"}) {
				return
			}
		}
	}
}

// PlayoutResult is the outcome of one Monte Carlo playout: the score for
// the player to move at the *starting* position, the AMAF scratchpad
// recording who first played each point, and the territory owner map
// accumulated along the way.
type PlayoutResult struct {
	Score    float64
	AmafMap  []int
	OwnerMap []float64
}

// Mcplayout runs a random(-ish) game to completion from pos using
// GenPlayoutMoves as the move policy, and returns the score for the player
// to move in the starting position. amafMap is a board-sized scratchpad:
// entries are left at 0 until first touched, then set to +1/-1 for
// black/white depending on who played there first.
func Mcplayout(cfg *Config, rng *rand.Rand, pos Position, amafMap []int) PlayoutResult {
	startParity := pos.Ply % 2
	passes := 0
	maxLen := 3 * pos.Board.N * pos.Board.N

	for passes < 2 && pos.Ply < maxLen {
		var next Position
		moved := false
		for pm := range GenPlayoutMoves(cfg.Pat3, rng, pos, pos.LastMovesNeighbors(rng), cfg.Probs, false) {
			candidate, ok := pos.Move(pm.Coord)
			if !ok {
				continue
			}
			rejectProb := ProbSSAReject
			if pm.Kind == "random" {
				rejectProb = ProbRSAReject
			}
			if rng.Float64() <= rejectProb {
				_, ds := FixAtari(candidate, pm.Coord, true, true, true)
				if len(ds) > 0 {
					continue
				}
			}
			if amafMap[pm.Coord] == 0 {
				if pos.Ply%2 == 0 {
					amafMap[pm.Coord] = 1
				} else {
					amafMap[pm.Coord] = -1
				}
			}
			next = candidate
			moved = true
			break
		}
		if !moved {
			pos = pos.PassMove()
			passes++
			continue
		}
		passes = 0
		pos = next
	}

	ownerMap := make([]float64, pos.Board.W*pos.Board.W)
	score := pos.Score(ownerMap)
	if startParity != pos.Ply%2 {
		score = -score
	}
	return PlayoutResult{Score: score, AmafMap: amafMap, OwnerMap: ownerMap}
}
