package weiqi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSpatialDictAndProbabilities(t *testing.T) {
	b := NewBoard(9)
	center, _ := ParseCoord(9, "E5")
	var neighborhood string
	for n := range b.NeighborhoodGridcular(center) {
		neighborhood = n
		break
	}
	spatLine := "71 6 " + neighborhood + " 33408f5e\n"
	probLine := "0.004 14 3842 (capture:17 border:0 s:71)\n"

	stores := NewPatternStores()
	require.NoError(t, stores.LoadSpatialDict(strings.NewReader(spatLine)))
	require.NoError(t, stores.LoadProbabilities(strings.NewReader(probLine)))

	p, ok := stores.LargePatternProbability(b, center)
	require.True(t, ok)
	require.InDelta(t, 0.004, p, 1e-9)
}

func TestLoadSpatialDictSkipsBadLinesButKeepsGood(t *testing.T) {
	data := "# comment\nnotanumber 2 xxx\n71 6 ..X\n"
	stores := NewPatternStores()
	err := stores.LoadSpatialDict(strings.NewReader(data))
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad pattern id")
	require.Len(t, stores.spatial, 1)
}

func TestLargePatternProbabilityMissesOnEmptyStore(t *testing.T) {
	stores := NewPatternStores()
	b := NewBoard(9)
	center, _ := ParseCoord(9, "E5")
	_, ok := stores.LargePatternProbability(b, center)
	require.False(t, ok)
}

func TestExtractSpatialID(t *testing.T) {
	id, ok := extractSpatialID("0.004 14 3842 (capture:17 border:0 s:784)")
	require.True(t, ok)
	require.EqualValues(t, 784, id)

	_, ok = extractSpatialID("0.004 14 3842 (capture:17 border:0)")
	require.False(t, ok)
}
