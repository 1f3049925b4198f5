package weiqi

// Pat3Set is the frozen set of 9-character 3x3 neighborhood strings that
// gen_playout_moves treats as worth playing on sight (spec.md §4.3). The
// reference pattern table this set is normally trained from was not
// available to build it from, so it is seeded here with four local shapes
// (hane at the head of two stones, crosscut response, one-point jump
// block, edge hane; see canonicalPat3) and expanded to every rotation
// and reflection, the same 8 square symmetries NeighborhoodGridcular walks.
// Row-major, top-left to bottom-right, '.'=empty, 'X'=to-play, 'x'=enemy,
// ' '=off-board.
type Pat3Set map[string]struct{}

var canonicalPat3 = []string{
	// hane at the head of two stones
	"XX." +
		"x.." +
		"???",
	// simple crosscut response
	".X." +
		"Xxx" +
		"...",
	// one-point jump block
	"X.." +
		".x." +
		"...",
	// edge hane (off-board on far row)
	"   " +
		"Xx." +
		".X.",
}

// '?' in a canonical pattern means "don't care" and is expanded to every
// concrete value, so these three-line literals can express partially
// specified shapes without enumerating every combination by hand.
var wildcardValues = []byte{Empty, Black, White, OffBoard}

// NewPat3Set builds the default pattern set by expanding canonicalPat3
// through every 8-fold symmetry and every '?' wildcard combination.
func NewPat3Set() Pat3Set {
	set := Pat3Set{}
	for _, pat := range canonicalPat3 {
		for _, expanded := range expandWildcards([]byte(pat)) {
			for _, sym := range pat3Symmetries(expanded) {
				set[sym] = struct{}{}
			}
		}
	}
	return set
}

// Contains reports whether s (as produced by Board.Neighborhood33) matches
// a known pattern.
func (s Pat3Set) Contains(nbhd string) bool {
	_, ok := s[nbhd]
	return ok
}

func expandWildcards(pat []byte) []string {
	idx := -1
	for i, b := range pat {
		if b == '?' {
			idx = i
			break
		}
	}
	if idx == -1 {
		return []string{string(pat)}
	}
	var out []string
	for _, v := range wildcardValues {
		cp := append([]byte(nil), pat...)
		cp[idx] = v
		out = append(out, expandWildcards(cp)...)
	}
	return out
}

// pat3Symmetries returns the 8 rotations/reflections of a 3x3 pattern
// string, indices laid out row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
func pat3Symmetries(p string) []string {
	g := [9]byte{}
	copy(g[:], p)
	build := func(idx [9]int) string {
		out := make([]byte, 9)
		for i, j := range idx {
			out[i] = g[j]
		}
		return string(out)
	}
	// identity, 3 rotations, and their mirrors (the 8 symmetries of a square)
	rot0 := [9]int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	rot90 := [9]int{6, 3, 0, 7, 4, 1, 8, 5, 2}
	rot180 := [9]int{8, 7, 6, 5, 4, 3, 2, 1, 0}
	rot270 := [9]int{2, 5, 8, 1, 4, 7, 0, 3, 6}
	flip := [9]int{2, 1, 0, 5, 4, 3, 8, 7, 6}
	flipRot90 := [9]int{8, 5, 2, 7, 4, 1, 6, 3, 0}
	flipRot180 := [9]int{6, 7, 8, 3, 4, 5, 0, 1, 2}
	flipRot270 := [9]int{0, 3, 6, 1, 4, 7, 2, 5, 8}
	return []string{
		build(rot0), build(rot90), build(rot180), build(rot270),
		build(flip), build(flipRot90), build(flipRot180), build(flipRot270),
	}
}
