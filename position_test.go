package weiqi

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMoveCapturesSurroundedStone(t *testing.T) {
	pos := NewEmptyPosition(5, 7.5)
	// White stone at C3 surrounded on three sides by black, one liberty at C2.
	white, _ := ParseCoord(5, "C3")
	pos.Board = pos.Board.BoardPut(white, White)
	for _, s := range []string{"C4", "B3", "D3"} {
		c, _ := ParseCoord(5, s)
		pos.Board = pos.Board.BoardPut(c, Black)
	}

	lastLib, _ := ParseCoord(5, "C2")
	next, ok := pos.Move(lastLib)
	require.True(t, ok)
	require.Equal(t, 1, next.CapturesTheir)
	// Board is swapped after the move, so the captured point reads back as
	// empty on the new to-move's board.
	require.Equal(t, Empty, next.Board.At(white))
}

func TestMoveRejectsSuicide(t *testing.T) {
	pos := NewEmptyPosition(5, 7.5)
	// White stones around C3, each with a liberty of its own elsewhere, so
	// none of them get captured; playing black at C3 leaves it with zero
	// liberties, which must be rejected as suicide.
	for _, s := range []string{"C4", "C2", "B3", "D3"} {
		c, _ := ParseCoord(5, s)
		pos.Board = pos.Board.BoardPut(c, White)
	}
	target, _ := ParseCoord(5, "C3")
	_, moved := pos.Move(target)
	require.False(t, moved)
}

func TestMoveRejectsKoRecapture(t *testing.T) {
	pos := NewEmptyPosition(9, 7.5)
	// E5 is empty but surrounded on all four sides by white (eyeish).
	// D5 is a lone white stone whose only liberty is E5; F5/E4/E6 are
	// white stones with other liberties of their own, so playing black at
	// E5 captures exactly D5 and nothing else, which must set the ko
	// point to D5.
	whites := []string{"D5", "F5", "E4", "E6"}
	for _, s := range whites {
		c, _ := ParseCoord(9, s)
		pos.Board = pos.Board.BoardPut(c, White)
	}
	blacks := []string{"C5", "D4", "D6"} // fences D5's only liberty to E5
	for _, s := range blacks {
		c, _ := ParseCoord(9, s)
		pos.Board = pos.Board.BoardPut(c, Black)
	}

	target, _ := ParseCoord(9, "E5")
	d5, _ := ParseCoord(9, "D5")
	captured, ok := pos.Move(target)
	require.True(t, ok)
	require.Equal(t, d5, captured.Ko)

	// The board has swapped, so it is now white's turn (spelled 'X'
	// again); recapturing at the ko point must be rejected.
	_, recaptured := captured.Move(d5)
	require.False(t, recaptured)
}

func TestPassMoveClearsKoAndLast(t *testing.T) {
	pos := NewEmptyPosition(5, 7.5)
	c, _ := ParseCoord(5, "C3")
	next, ok := pos.Move(c)
	require.True(t, ok)
	passed := next.PassMove()
	require.Equal(t, NoCoord, passed.Ko)
	require.Equal(t, NoCoord, passed.Last)
	require.Equal(t, next.Last, passed.Last2)
	require.Equal(t, next.Ply+1, passed.Ply)
}

func TestScoreEmptyBoardAppliesKomiByParity(t *testing.T) {
	pos := NewEmptyPosition(9, 7.5)
	pos.Ply = 2 // even ply: to-move is black, komi charged against it
	require.Equal(t, -7.5, pos.Score(nil))

	pos.Ply = 1
	require.Equal(t, 7.5, pos.Score(nil))
}

func TestScoreCountsTerritoryByFlooding(t *testing.T) {
	pos := NewEmptyPosition(5, 0)
	for _, s := range []string{"A1", "A2", "A3", "A4", "A5"} {
		c, _ := ParseCoord(5, s)
		pos.Board = pos.Board.BoardPut(c, Black)
	}
	pos.Ply = 0
	// Everything else on the board either touches only black or is the
	// black wall itself, so the whole board scores black.
	require.Equal(t, 25.0, pos.Score(nil))
}

func TestMovesSkipsTrueEyes(t *testing.T) {
	pos := NewEmptyPosition(5, 7.5)
	for _, s := range []string{"B2", "B4", "A3", "C3"} {
		c, _ := ParseCoord(5, s)
		pos.Board = pos.Board.BoardPut(c, Black)
	}
	eye, _ := ParseCoord(5, "B3")
	for c := range pos.Moves(1) {
		require.NotEqual(t, eye, c)
	}
}

func TestLastMovesNeighborsOrdersLastBeforeLast2(t *testing.T) {
	pos := NewEmptyPosition(9, 7.5)
	last, _ := ParseCoord(9, "E5")
	last2, _ := ParseCoord(9, "C3")
	pos.Last = last
	pos.Last2 = last2
	rng := rand.New(rand.NewSource(3))
	neighbors := pos.LastMovesNeighbors(rng)

	lastIdx, last2Idx := -1, -1
	for i, c := range neighbors {
		if c == last && lastIdx == -1 {
			lastIdx = i
		}
		if c == last2 && last2Idx == -1 {
			last2Idx = i
		}
	}
	require.GreaterOrEqual(t, lastIdx, 0)
	require.GreaterOrEqual(t, last2Idx, 0)
	require.Less(t, lastIdx, last2Idx)
}
