package weiqi

import "sort"

// gridcularShell is one ring of a gridcular-distance neighborhood: all
// offsets sharing the same distance value, in a fixed deterministic order.
type gridcularShell struct {
	points [][2]int // (dy, dx) pairs
}

// gridcularShellCache memoizes the shell table per board radius. The table
// only depends on N, and boards of a given size are built repeatedly (once
// per Position in a search), so this is worth caching.
var gridcularShellCache = map[int][]gridcularShell{}

// gridcularDistance is the "gridcular" metric from spec.md: Manhattan
// distance plus Chebyshev distance, which produces octagon-ish rings that
// this engine's pattern matcher walks outward from a point.
func gridcularDistance(dy, dx int) int {
	ady, adx := abs(dy), abs(dx)
	m := ady
	if adx > m {
		m = adx
	}
	return ady + adx + m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// gridcularShells returns the shell table for a board of the given size,
// covering every offset that can land on such a board, grouped into
// successive distance rings and sorted for determinism.
func gridcularShells(n int) []gridcularShell {
	if cached, ok := gridcularShellCache[n]; ok {
		return cached
	}
	byDist := map[int][][2]int{}
	for dy := -(n - 1); dy <= n-1; dy++ {
		for dx := -(n - 1); dx <= n-1; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			d := gridcularDistance(dy, dx)
			byDist[d] = append(byDist[d], [2]int{dy, dx})
		}
	}
	dists := make([]int, 0, len(byDist))
	for d := range byDist {
		dists = append(dists, d)
	}
	sort.Ints(dists)
	shells := make([]gridcularShell, 0, len(dists))
	for _, d := range dists {
		pts := byDist[d]
		sort.Slice(pts, func(i, j int) bool {
			if pts[i][0] != pts[j][0] {
				return pts[i][0] < pts[j][0]
			}
			return pts[i][1] < pts[j][1]
		})
		shells = append(shells, gridcularShell{points: pts})
	}
	gridcularShellCache[n] = shells
	return shells
}

// gridcularRotate applies one of the 8 square symmetries (axis swap combined
// with sign flips on each axis) to an offset. This mirrors the
// (xyindex, xymultiplier) rotation table used by the reference engine's
// neighborhood_gridcular, expressed directly instead of through an index
// lookup.
func gridcularRotate(dy, dx, ri int) (int, int) {
	switch ri {
	case 0:
		return dy, dx
	case 1:
		return -dy, dx
	case 2:
		return dy, -dx
	case 3:
		return -dy, -dx
	case 4:
		return dx, dy
	case 5:
		return -dx, dy
	case 6:
		return dx, -dy
	default:
		return -dx, -dy
	}
}
