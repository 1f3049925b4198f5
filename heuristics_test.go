package weiqi

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixAtariGroupInAtari(t *testing.T) {
	b := NewBoard(5)
	setup := func(pos Position, coords []string, color byte) Position {
		for _, s := range coords {
			c, _ := ParseCoord(5, s)
			pos.Board = pos.Board.BoardPut(c, color)
		}
		return pos
	}
	pos := Position{Board: b, Ko: NoCoord, Last: NoCoord, Last2: NoCoord, Komi: 7.5}
	// White stone at C3 surrounded on three sides by black, one liberty at C2.
	pos = setup(pos, []string{"C3"}, White)
	pos = setup(pos, []string{"C4", "B3", "D3"}, Black)

	target, _ := ParseCoord(5, "C3")
	inAtari, escapes := FixAtari(pos, target, false, true, false)
	require.True(t, inAtari)
	require.Len(t, escapes, 1)
	lib, _ := ParseCoord(5, "C2")
	require.Equal(t, lib, escapes[0])
}

func TestFixAtariSafeGroupNotInAtari(t *testing.T) {
	pos := NewEmptyPosition(5, 7.5)
	c, _ := ParseCoord(5, "C3")
	pos.Board = pos.Board.BoardPut(c, Black)
	inAtari, escapes := FixAtari(pos, c, false, true, false)
	require.False(t, inAtari)
	require.Empty(t, escapes)
}

func TestCfgDistancesZeroAtOrigin(t *testing.T) {
	b := NewBoard(5)
	c, _ := ParseCoord(5, "C3")
	dists := CfgDistances(b, c)
	require.Equal(t, 0, dists[c])
	n, _ := ParseCoord(5, "C4")
	require.Equal(t, 1, dists[n])
}

func TestCfgDistancesSameGroupSameDistance(t *testing.T) {
	b := NewBoard(5)
	c1, _ := ParseCoord(5, "C3")
	c2, _ := ParseCoord(5, "C4")
	b = b.BoardPut(c1, Black).BoardPut(c2, Black)
	dists := CfgDistances(b, c1)
	require.Equal(t, dists[c1], dists[c2])
}

func TestGenPlayoutMovesSuggestsCapture(t *testing.T) {
	pos := NewEmptyPosition(5, 7.5)
	c, _ := ParseCoord(5, "C3")
	pos.Board = pos.Board.BoardPut(c, White)
	for _, s := range []string{"C4", "B3", "D3"} {
		d, _ := ParseCoord(5, s)
		pos.Board = pos.Board.BoardPut(d, Black)
	}
	rng := rand.New(rand.NewSource(42))
	probs := PlayoutProbs{Capture: 1, Pat3: 0}
	var kinds []string
	for pm := range GenPlayoutMoves(NewPat3Set(), rng, pos, []Coord{c}, probs, true) {
		kinds = append(kinds, pm.Kind)
		break
	}
	require.Len(t, kinds, 1)
	require.Contains(t, kinds[0], "capture")
}

func TestMcplayoutReturnsFiniteScore(t *testing.T) {
	cfg := NewConfig()
	cfg.BoardSize = 5
	rng := rand.New(rand.NewSource(7))
	pos := NewEmptyPosition(5, 7.5)
	amaf := make([]int, pos.Board.W*pos.Board.W)
	result := Mcplayout(cfg, rng, pos, amaf)
	require.False(t, result.Score != result.Score) // not NaN
}
