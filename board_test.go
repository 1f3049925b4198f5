package weiqi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// boardFromRows builds a Board from N rows of N characters ('.', 'X', 'x'),
// the same literal-diagram test style used throughout this codebase's
// reference material, adapted to this board's '.'/'X'/'x' alphabet instead
// of a display alphabet.
func boardFromRows(t *testing.T, rows string) Board {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(rows), "\n")
	n := len(lines)
	b := NewBoard(n)
	for row, line := range lines {
		line = strings.TrimSpace(line)
		require.Lenf(t, line, n, "row %d wrong length", row)
		for col := 0; col < n; col++ {
			c := Coord((row+1)*b.W + col + 1)
			b = b.BoardPut(c, line[col])
		}
	}
	return b
}

func TestNewBoardBordersAndInterior(t *testing.T) {
	b := NewBoard(3)
	require.Equal(t, "...\n...\n...", b.String())
	require.Equal(t, OffBoard, b.At(0))
}

func TestFloodfillCapturesWholeGroup(t *testing.T) {
	b := boardFromRows(t, `
XX.
X..
...`)
	start, _ := ParseCoord(3, "A3")
	flooded := b.Floodfill(start)
	require.Equal(t, 3, flooded.Count(FloodMark))
}

func TestContactFindsAdjacentLiberty(t *testing.T) {
	b := boardFromRows(t, `
XX.
X..
...`)
	start, _ := ParseCoord(3, "A3")
	flooded := b.Floodfill(start)
	_, ok := flooded.Contact(Empty)
	require.True(t, ok)
}

func TestContactNoneWhenFullyEnclosed(t *testing.T) {
	b := boardFromRows(t, `
XXX
X.X
XXX`)
	start, _ := ParseCoord(3, "B2")
	flooded := b.Floodfill(start)
	_, ok := flooded.Contact(White)
	require.False(t, ok)
}

func TestIsEyeTrueDiamond(t *testing.T) {
	b := boardFromRows(t, `
.X.
X.X
.X.`)
	center, _ := ParseCoord(3, "B2")
	color, ok := b.IsEye(center)
	require.True(t, ok)
	require.Equal(t, Black, color)
}

func TestIsEyeFalsifiedByTwoDiagonals(t *testing.T) {
	b := NewBoard(5)
	center, _ := ParseCoord(5, "C3")
	for _, s := range []string{"C4", "C2", "B3", "D3"} {
		c, _ := ParseCoord(5, s)
		b = b.BoardPut(c, Black)
	}
	for _, s := range []string{"B2", "D4"} {
		c, _ := ParseCoord(5, s)
		b = b.BoardPut(c, White)
	}
	_, ok := b.IsEye(center)
	require.False(t, ok)
}

func TestSwapcaseFlipsColors(t *testing.T) {
	b := boardFromRows(t, `
X.x
...
x.X`)
	s := b.Swapcase()
	tl, _ := ParseCoord(3, "A3")
	require.Equal(t, White, s.At(tl))
}

func TestNeighborsAndDiagNeighbors(t *testing.T) {
	b := NewBoard(5)
	center, _ := ParseCoord(5, "C3")
	neighbors := b.Neighbors(center)
	require.Len(t, neighbors, 4)
	diag := b.DiagNeighbors(center)
	require.Len(t, diag, 4)
	for _, d := range diag {
		require.NotContains(t, neighbors[:], d)
	}
}

func TestParseCoordRoundTrip(t *testing.T) {
	for _, s := range []string{"A1", "D4", "M13", "pass"} {
		c, ok := ParseCoord(13, s)
		require.True(t, ok)
		require.Equal(t, strings.ToUpper(s), strings.ToUpper(StrCoord(13, c)))
	}
}

func TestLineHeight(t *testing.T) {
	corner, _ := ParseCoord(9, "A1")
	require.Equal(t, 0, NewBoard(9).LineHeight(corner))
	center, _ := ParseCoord(9, "E5")
	require.Equal(t, 4, NewBoard(9).LineHeight(center))
}

func TestNeighborhoodGridcularGrowsMonotonically(t *testing.T) {
	b := NewBoard(9)
	center, _ := ParseCoord(9, "E5")
	prevLen := -1
	count := 0
	for s := range b.NeighborhoodGridcular(center) {
		require.GreaterOrEqual(t, len(s), prevLen)
		prevLen = len(s)
		count++
		if count > 40 {
			break
		}
	}
	require.Greater(t, count, 0)
}

func TestNeighborhood33(t *testing.T) {
	b := boardFromRows(t, `
XXX
X.x
.xx`)
	center, _ := ParseCoord(3, "B2")
	require.Equal(t, "XXXX.x.xx", b.Neighborhood33(center))
}

func TestEmptyAreaDetectsNearbyStone(t *testing.T) {
	b := boardFromRows(t, `
.....
..X..
.....
.....
.....`)
	far, _ := ParseCoord(5, "A1")
	require.True(t, b.EmptyArea(far, 3))
	near, _ := ParseCoord(5, "B4")
	require.False(t, b.EmptyArea(near, 3))
}
