package builder

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// scattered is the pre-permutation graph, indexed by MPH ordinal: the
// directed adjacency as read from edges.csv.gz, plus the symmetrized
// adjacency (both directions unioned) used only to drive BFS connectivity.
type scattered struct {
	n   int
	fwd [][]int64 // fwd[ordinal] = directed successor ordinals
	sym [][]int64 // sym[ordinal] = neighbor ordinals in either direction
}

// buildScattered assigns each node an MPH ordinal and lays out the directed
// and symmetrized adjacency lists edges.csv.gz describes. pidToOrdinal must
// cover every pid referenced by edges; a miss is ErrDanglingEdge.
func buildScattered(n int, pidToOrdinal map[string]int64, edges []edge) (*scattered, error) {
	s := &scattered{n: n, fwd: make([][]int64, n), sym: make([][]int64, n)}

	for _, e := range edges {
		srcOrd, ok := pidToOrdinal[e.src]
		if !ok {
			return nil, ErrDanglingEdge
		}
		dstOrd, ok := pidToOrdinal[e.dst]
		if !ok {
			return nil, ErrDanglingEdge
		}

		s.fwd[srcOrd] = append(s.fwd[srcOrd], dstOrd)
		s.sym[srcOrd] = append(s.sym[srcOrd], dstOrd)
		s.sym[dstOrd] = append(s.sym[dstOrd], srcOrd)
	}

	return s, nil
}

// bfsOrder computes the BFS permutation: order[ordinal] = bfsOrdinal. BFS
// starts from ordinal 0 over the symmetrized graph, tracking the visited
// frontier in a roaring.Bitmap (dense over [0,n) and a natural fit for the
// archive's node-count scale); ordinals the BFS never reaches (disconnected
// components) are appended afterward in increasing ordinal order, so every
// ordinal in [0,n) gets a distinct BFS ordinal.
func bfsOrder(s *scattered) []int64 {
	order := make([]int64, s.n)
	for i := range order {
		order[i] = -1
	}

	seen := roaring.New()
	next := int64(0)
	if s.n > 0 {
		queue := []int64{0}
		seen.Add(0)
		order[0] = 0
		next = 1

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]

			neighbors := append([]int64(nil), s.sym[v]...)
			sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })

			for _, nb := range neighbors {
				if !seen.CheckedAdd(uint32(nb)) {
					continue
				}
				order[nb] = next
				next++
				queue = append(queue, nb)
			}
		}
	}

	for ord := int64(0); ord < int64(s.n); ord++ {
		if !seen.Contains(uint32(ord)) {
			order[ord] = next
			next++
		}
	}

	return order
}

// invert returns inv such that inv[order[i]] == i, i.e. internal id ->
// MPH ordinal.
func invert(order []int64) []int64 {
	inv := make([]int64, len(order))
	for ordinal, id := range order {
		inv[id] = int64(ordinal)
	}

	return inv
}
