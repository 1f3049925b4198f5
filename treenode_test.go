package weiqi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTreeNodeHasEvenPrior(t *testing.T) {
	n := NewTreeNode(NewEmptyPosition(5, 7.5))
	require.Equal(t, float64(PriorEven), n.PV)
	require.Equal(t, float64(PriorEven)/2, n.PW)
}

func TestExpandAlwaysProducesAtLeastOneChild(t *testing.T) {
	cfg := NewConfig()
	cfg.BoardSize = 5
	n := NewTreeNode(NewEmptyPosition(5, 7.5))
	n.Expand(cfg)
	require.NotEmpty(t, n.Children)
}

func TestExpandOnFullBoardAddsPassChild(t *testing.T) {
	cfg := NewConfig()
	cfg.BoardSize = 3
	b := NewBoard(3)
	for _, s := range []string{"A1", "A2", "A3", "B1", "B2", "B3", "C1", "C2", "C3"} {
		c, _ := ParseCoord(3, s)
		b = b.BoardPut(c, Black)
	}
	pos := Position{Board: b, Ko: NoCoord, Last: NoCoord, Last2: NoCoord, Komi: 7.5}
	n := NewTreeNode(pos)
	n.Expand(cfg)
	require.Len(t, n.Children, 1)
	require.Equal(t, NoCoord, n.Children[0].Pos.Last)
}

func TestRaveUrgencyFallsBackToExpectationWithoutAmaf(t *testing.T) {
	n := NewTreeNode(NewEmptyPosition(5, 7.5))
	n.V = 4
	n.W = 2
	got := n.RaveUrgency(DefaultRaveEquiv)
	want := (float64(n.W) + n.PW) / (float64(n.V) + n.PV)
	require.InDelta(t, want, got, 1e-9)
}

func TestWinrateNaNWhenUnvisited(t *testing.T) {
	n := NewTreeNode(NewEmptyPosition(5, 7.5))
	got := n.Winrate()
	require.True(t, got != got)
}

func TestBestMovePicksMostVisited(t *testing.T) {
	root := NewTreeNode(NewEmptyPosition(5, 7.5))
	a := NewTreeNode(NewEmptyPosition(5, 7.5))
	a.V = 3
	b := NewTreeNode(NewEmptyPosition(5, 7.5))
	b.V = 10
	root.Children = []*TreeNode{a, b}
	require.Same(t, b, root.BestMove())
}
