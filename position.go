package weiqi

import (
	"fmt"
	"io"
	"iter"
	"math/rand"
)

// Position is an immutable Go position: the board, capture counts, ply
// count, the ko point (if any), the last two moves played, and komi. Every
// move or pass returns a new Position; nothing here is mutated in place,
// which is what lets the search engine hand positions to stateless workers
// without any shared mutable state (spec.md §5).
type Position struct {
	Board        Board
	CapturesMine int
	CapturesTheir int
	Ply          int
	Ko           Coord
	Last         Coord
	Last2        Coord
	Komi         float64
}

// NewEmptyPosition returns the starting position for a board of size n.
func NewEmptyPosition(n int, komi float64) Position {
	return Position{
		Board: NewBoard(n),
		Ko:    NoCoord,
		Last:  NoCoord,
		Last2: NoCoord,
		Komi:  komi,
	}
}

// Move plays a stone for the to-play player (always 'X') at c, returning
// the resulting position, or false if the move is illegal: the ko point,
// playing in a point that is not empty, or suicide.
func (p Position) Move(c Coord) (Position, bool) {
	if c == p.Ko {
		return Position{}, false
	}
	if p.Board.At(c) != Empty {
		return Position{}, false
	}
	inEnemyEye := false
	if color, ok := p.Board.IsEyeish(c); ok && color == White {
		inEnemyEye = true
	}
	board := p.Board.BoardPut(c, Black)

	capturedMine := p.CapturesMine
	var singleCaps []Coord
	for _, d := range board.Neighbors(c) {
		if board.At(d) != White {
			continue
		}
		fboard := board.Floodfill(d)
		if _, hasLiberty := fboard.Contact(Empty); hasLiberty {
			continue
		}
		capCount := fboard.Count(FloodMark)
		if capCount == 1 {
			singleCaps = append(singleCaps, d)
		}
		capturedMine += capCount
		board = fboard.Replace(FloodMark, Empty)
	}

	ko := NoCoord
	if inEnemyEye && len(singleCaps) == 1 {
		ko = singleCaps[0]
	}

	// Suicide check: after captures, does our own group at c still have a
	// liberty?
	sfboard := board.Floodfill(c)
	if _, hasLiberty := sfboard.Contact(Empty); !hasLiberty {
		return Position{}, false
	}

	return Position{
		Board:         board.Swapcase(),
		CapturesMine:  p.CapturesTheir,
		CapturesTheir: capturedMine,
		Ply:           p.Ply + 1,
		Ko:            ko,
		Last:          c,
		Last2:         p.Last,
		Komi:          p.Komi,
	}, true
}

// PassMove returns the position after a pass: a flipped position with no
// ko and no last move.
func (p Position) PassMove() Position {
	return Position{
		Board:         p.Board.Swapcase(),
		CapturesMine:  p.CapturesTheir,
		CapturesTheir: p.CapturesMine,
		Ply:           p.Ply + 1,
		Ko:            NoCoord,
		Last:          NoCoord,
		Last2:         p.Last,
		Komi:          p.Komi,
	}
}

// Moves yields candidate next-move coordinates starting the board scan at
// i0, wrapping around once. It includes false positives (suicide moves)
// but excludes true-eye-filling moves, matching the reference playout
// move generator's contract.
func (p Position) Moves(i0 int) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		w := p.Board.W
		total := w * w
		i := i0 - 1
		passes := 0
		for {
			next := -1
			for j := i + 1; j < total; j++ {
				if p.Board.At(Coord(j)) == Empty {
					next = j
					break
				}
			}
			if passes > 0 && (next == -1 || next >= i0) {
				break
			}
			if next == -1 {
				i = -1
				passes++
				continue
			}
			i = next
			if color, ok := p.Board.IsEye(Coord(next)); ok && color == Black {
				continue
			}
			if !yield(Coord(next)) {
				return
			}
		}
	}
}

// LastMovesNeighbors returns a randomly shuffled list of points including
// and surrounding the last two moves, last move's neighborhood first.
func (p Position) LastMovesNeighbors(rng *rand.Rand) []Coord {
	var coords []Coord
	seen := map[Coord]bool{}
	for _, c := range []Coord{p.Last, p.Last2} {
		if c == NoCoord {
			continue
		}
		group := []Coord{c}
		group = append(group, p.Board.Neighbors(c)[:]...)
		group = append(group, p.Board.DiagNeighbors(c)[:]...)
		rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		for _, d := range group {
			if !seen[d] {
				seen[d] = true
				coords = append(coords, d)
			}
		}
	}
	return coords
}

// Score computes the Tromp-Taylor-style score for the to-play player,
// assuming a final position with all dead stones already captured. If
// ownerMap is non-nil, it accumulates +1/-1 per point (black/white
// perspective) scaled by whose turn it currently is, the running
// statistic the search loop uses to render territory estimates.
func (p Position) Score(ownerMap []float64) float64 {
	board := p.Board
	w := board.W
	for i := 0; i < w*w; i++ {
		if board.At(Coord(i)) != Empty {
			continue
		}
		fboard := board.Floodfill(Coord(i))
		_, touchesBlack := fboard.Contact(Black)
		_, touchesWhite := fboard.Contact(White)
		switch {
		case touchesBlack && !touchesWhite:
			board = fboard.Replace(FloodMark, Black)
		case touchesWhite && !touchesBlack:
			board = fboard.Replace(FloodMark, White)
		default:
			board = fboard.Replace(FloodMark, SekiMark)
		}
	}
	komi := p.Komi
	if p.Ply%2 == 0 {
		komi = -komi
	}
	if ownerMap != nil {
		sign := 1.0
		if p.Ply%2 != 0 {
			sign = -1.0
		}
		for i := 0; i < w*w; i++ {
			var n float64
			switch board.At(Coord(i)) {
			case Black:
				n = 1
			case White:
				n = -1
			}
			ownerMap[i] += n * sign
		}
	}
	return float64(board.Count(Black)) - float64(board.Count(White)) + komi
}

// PrintPos renders a human-readable board diagram in the original Position
// print_pos style: move/captures header, coordinate gutter, and an
// optional owner-map overlay showing estimated final territory.
func (p Position) PrintPos(w io.Writer, ownerMap []float64) {
	var display Board
	var capsToPlay, capsOther int
	if p.Ply%2 == 0 {
		display = p.Board.Replace(White, 'O')
		capsToPlay, capsOther = p.CapturesMine, p.CapturesTheir
	} else {
		display = p.Board.Replace(Black, 'O').Replace(White, Black)
		capsOther, capsToPlay = p.CapturesMine, p.CapturesTheir
	}
	fmt.Fprintf(w, "Move: %-3d   Black: %d caps   White: %d caps  Komi: %.1f\n",
		p.Ply, capsToPlay, capsOther, p.Komi)

	n := p.Board.N
	bw := p.Board.W
	for row := 0; row < n; row++ {
		boardRow := row + 1
		fmt.Fprintf(w, "%3d ", n-row)
		for col := 0; col < n; col++ {
			c := Coord(boardRow*bw + col + 1)
			ch := display.At(c)
			if c == p.Last {
				fmt.Fprintf(w, "(%c)", ch)
			} else {
				fmt.Fprintf(w, " %c ", ch)
			}
		}
		if ownerMap != nil {
			fmt.Fprint(w, "   ")
			for col := 0; col < n; col++ {
				c := Coord(boardRow*bw + col + 1)
				fmt.Fprintf(w, "%c", ownerSymbol(ownerMap[c]))
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "    ")
	for col := 0; col < n; col++ {
		fmt.Fprintf(w, "%s  ", string(colLetters[col]))
	}
	fmt.Fprintln(w)
}

func ownerSymbol(v float64) byte {
	switch {
	case v > 0.6:
		return Black
	case v > 0.3:
		return 'x'
	case v < -0.6:
		return 'O'
	case v < -0.3:
		return 'o'
	default:
		return Empty
	}
}
