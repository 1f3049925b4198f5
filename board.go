package weiqi

import (
	"bytes"
	"iter"
)

// Stone/point byte values. 'X' is always the player to move; 'x' is the
// opponent. Swapcase() flips between them at the end of every move, so the
// engine never tracks color explicitly (spec.md Non-goals).
const (
	Empty     byte = '.'
	Black     byte = 'X'
	White     byte = 'x'
	OffBoard  byte = ' '
	FloodMark byte = '#'
	SekiMark  byte = ':'
)

// Board is a flat (N+2)x(N+2) grid: an N x N playing area wrapped in a
// one-point-deep off-board border, so every interior cell has four
// in-bounds neighbors without edge checks. Coordinates are indices into
// the flat cell buffer. Board size is fixed per instance, set once at
// construction (spec.md Non-goal: no runtime resizing).
type Board struct {
	N     int
	W     int
	cells []byte
}

// NewBoard returns an empty board of size n x n.
func NewBoard(n int) Board {
	w := n + 2
	cells := make([]byte, w*w)
	for row := 0; row < w; row++ {
		for col := 0; col < w; col++ {
			idx := row*w + col
			if row == 0 || row == w-1 || col == 0 || col == w-1 {
				cells[idx] = OffBoard
			} else {
				cells[idx] = Empty
			}
		}
	}
	return Board{N: n, W: w, cells: cells}
}

// clone returns a deep copy of the cell buffer so callers can mutate freely
// without ever aliasing another Board's cells. Every transform below
// returns a new Board, matching spec.md's copy-on-write board semantics.
func (b Board) clone() []byte {
	out := make([]byte, len(b.cells))
	copy(out, b.cells)
	return out
}

// At returns the content of a coordinate.
func (b Board) At(c Coord) byte {
	return b.cells[c]
}

// Neighbors returns the four orthogonal neighbors of c.
func (b Board) Neighbors(c Coord) [4]Coord {
	w := Coord(b.W)
	return [4]Coord{c - 1, c + 1, c - w, c + w}
}

// DiagNeighbors returns the four diagonal neighbors of c.
func (b Board) DiagNeighbors(c Coord) [4]Coord {
	w := Coord(b.W)
	return [4]Coord{c - w - 1, c - w + 1, c + w - 1, c + w + 1}
}

// Floodfill replaces the continuous same-color area starting at c with the
// transient marker FloodMark, returning a new board. Used by capture
// detection (liberty counting) and scoring (territory flood).
func (b Board) Floodfill(c Coord) Board {
	cells := b.clone()
	p := cells[c]
	cells[c] = FloodMark
	fringe := []Coord{c}
	for len(fringe) > 0 {
		cur := fringe[len(fringe)-1]
		fringe = fringe[:len(fringe)-1]
		for _, d := range b.Neighbors(cur) {
			if cells[d] == p {
				cells[d] = FloodMark
				fringe = append(fringe, d)
			}
		}
	}
	return Board{N: b.N, W: b.W, cells: cells}
}

// Swapcase flips every Black stone to White and vice versa, the mechanism
// by which "X always means to-play" is maintained after a move.
func (b Board) Swapcase() Board {
	cells := b.clone()
	for i, p := range cells {
		switch p {
		case Black:
			cells[i] = White
		case White:
			cells[i] = Black
		}
	}
	return Board{N: b.N, W: b.W, cells: cells}
}

// IsEyeish reports whether c is surrounded by a single color (ignoring
// off-board neighbors), returning that color. It may still be a false eye;
// see IsEye.
func (b Board) IsEyeish(c Coord) (byte, bool) {
	var eyeColor byte
	for _, d := range b.Neighbors(c) {
		p := b.cells[d]
		if p == OffBoard {
			continue
		}
		if p == Empty {
			return 0, false
		}
		if eyeColor == 0 {
			eyeColor = p
		} else if p == swapColor(eyeColor) {
			return 0, false
		}
	}
	if eyeColor == 0 {
		return 0, false
	}
	return eyeColor, true
}

// IsEye reports whether c is a true eye (eyeish, and not falsified by
// enough diagonal enemy stones or board-edge proximity).
func (b Board) IsEye(c Coord) (byte, bool) {
	eyeColor, ok := b.IsEyeish(c)
	if !ok {
		return 0, false
	}
	falseColor := swapColor(eyeColor)
	falseCount := 0
	atEdge := false
	for _, d := range b.DiagNeighbors(c) {
		p := b.cells[d]
		if p == OffBoard {
			atEdge = true
		} else if p == falseColor {
			falseCount++
		}
	}
	if atEdge {
		falseCount++
	}
	if falseCount >= 2 {
		return 0, false
	}
	return eyeColor, true
}

// Contact reports a coordinate of color p orthogonally adjacent to the
// flood marker FloodMark, for use right after Floodfill. The reference
// engine finds this with a precompiled regex walk over the board string;
// a direct neighbor scan over the flat buffer is the natural equivalent
// here and needs no board-string/regex machinery.
func (b Board) Contact(p byte) (Coord, bool) {
	for i, v := range b.cells {
		if v != FloodMark {
			continue
		}
		c := Coord(i)
		for _, d := range b.Neighbors(c) {
			if b.cells[d] == p {
				return d, true
			}
		}
	}
	return NoCoord, false
}

// BoardPut returns a new board with p written at c.
func (b Board) BoardPut(c Coord, p byte) Board {
	cells := b.clone()
	cells[c] = p
	return Board{N: b.N, W: b.W, cells: cells}
}

// EmptyArea reports whether every point within the given Manhattan-ish
// (neighbor-expanded) distance of c is empty.
func (b Board) EmptyArea(c Coord, dist int) bool {
	for _, d := range b.Neighbors(c) {
		p := b.cells[d]
		if p == Black || p == White {
			return false
		}
		if p == Empty && dist > 1 && !b.EmptyArea(d, dist-1) {
			return false
		}
	}
	return true
}

// NeighborhoodGridcular yields, for coordinate c, progressively wider
// gridcular-distance neighborhood strings across all 8 square symmetries
// (axes swapped or not, times the 4 sign combinations of the two axes). Each shell's points are
// appended to 8 running accumulators (one per symmetry) and each
// accumulator is yielded once per shell, so later values are strict
// extensions of earlier ones for the same symmetry index. Off-board cells
// contribute a space, matching the reference engine's border handling.
func (b Board) NeighborhoodGridcular(c Coord) iter.Seq[string] {
	return func(yield func(string) bool) {
		shells := gridcularShells(b.N)
		rel := int(c) - (b.W + 1)
		baseY := rel / b.W
		baseX := rel % b.W
		acc := make([][]byte, 8)
		for i := range acc {
			acc[i] = make([]byte, 0, 16)
		}
		for _, shell := range shells {
			for ri := 0; ri < 8; ri++ {
				for _, o := range shell.points {
					dy, dx := gridcularRotate(o[0], o[1], ri)
					y := baseY + dy
					x := baseX + dx
					ch := byte(' ')
					if y >= 0 && y < b.N && x >= 0 && x < b.N {
						ch = b.cells[(y+1)*b.W+x+1]
					}
					acc[ri] = append(acc[ri], ch)
				}
				if !yield(string(acc[ri])) {
					return
				}
			}
		}
	}
}

// Neighborhood33 returns the 9 points forming the 3x3 square centered on c,
// row-major, top to bottom.
func (b Board) Neighborhood33(c Coord) string {
	w := b.W
	i := int(c)
	buf := make([]byte, 0, 9)
	buf = append(buf, b.cells[i-w-1:i-w+2]...)
	buf = append(buf, b.cells[i-1:i+2]...)
	buf = append(buf, b.cells[i+w-1:i+w+2]...)
	return string(buf)
}

// LineHeight returns the distance from c to the nearest board edge (0 =
// first line, 1 = second line, and so on).
func (b Board) LineHeight(c Coord) int {
	rel := int(c) - (b.W + 1)
	row := rel / b.W
	col := rel % b.W
	h := row
	if col < h {
		h = col
	}
	if n1r := b.N - 1 - row; n1r < h {
		h = n1r
	}
	if n1c := b.N - 1 - col; n1c < h {
		h = n1c
	}
	return h
}

// Count returns the number of cells holding byte p.
func (b Board) Count(p byte) int {
	return bytes.Count(b.cells, []byte{p})
}

// Replace returns a new board with every occurrence of from replaced by to.
func (b Board) Replace(from, to byte) Board {
	cells := b.clone()
	for i, v := range cells {
		if v == from {
			cells[i] = to
		}
	}
	return Board{N: b.N, W: b.W, cells: cells}
}

// String renders the board as N rows of N characters separated by real
// newlines, for debugging and the console frontend. This buffer is
// display-only; the internal cell buffer never contains '\n'.
func (b Board) String() string {
	var buf bytes.Buffer
	for row := 1; row <= b.N; row++ {
		start := row*b.W + 1
		buf.Write(b.cells[start : start+b.N])
		if row != b.N {
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func swapColor(p byte) byte {
	switch p {
	case Black:
		return White
	case White:
		return Black
	default:
		return p
	}
}

// ParseCoord parses a coordinate against this board's size.
func (b Board) ParseCoord(s string) (Coord, bool) {
	return ParseCoord(b.N, s)
}

// StrCoord renders a coordinate against this board's size.
func (b Board) StrCoord(c Coord) string {
	return StrCoord(b.N, c)
}
