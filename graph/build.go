package graph

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/swhgraph/internal/bitio"
)

// BuildFromAdjacency compresses an explicit adjacency function into a Graph.
// neighbors(v) must return v's successor ids in any order; BuildFromAdjacency
// sorts a defensive copy before encoding so the on-disk invariant ("monotonic
// successors") always holds regardless of caller order.
//
// This is the in-process stage used by the offline builder's permute and
// transpose phases (spec.md §4.1); it also serves tests and small fixtures.
func BuildFromAdjacency(n int64, neighbors func(v int64) []int64) (*Graph, error) {
	w := bitio.NewWriter()
	offsets := make([]int64, n+1)
	var numArcs int64

	for v := int64(0); v < n; v++ {
		offsets[v] = w.BitLen()

		raw := append([]int64(nil), neighbors(v)...)
		sort.Slice(raw, func(i, j int) bool { return raw[i] < raw[j] })

		succ := raw[:0]
		prev := int64(-1)
		for _, s := range raw {
			if s < 0 || s >= n {
				return nil, fmt.Errorf("%w: successor %d of node %d out of range", ErrOutOfRange, s, v)
			}
			if s == prev {
				continue // a directory may list the same child under two entry names
			}
			succ = append(succ, s)
			prev = s
		}

		w.WriteGamma(uint64(len(succ)))
		numArcs += int64(len(succ))

		prev = int64(-1)
		for _, s := range succ {
			if prev < 0 {
				w.WriteGamma(uint64(s))
			} else {
				w.WriteGamma(uint64(s - prev - 1))
			}
			prev = s
		}
	}
	offsets[n] = w.BitLen()

	return &Graph{data: w.Bytes(), offsets: offsets, numArcs: numArcs}, nil
}

// Transpose builds the arc-reversed twin of g: for every arc (a,b) in g,
// the result contains (b,a). Cardinalities match by construction.
func Transpose(g *Graph) (*Graph, error) {
	n := g.NumNodes()
	rev := make([][]int64, n)

	for v := int64(0); v < n; v++ {
		succ, err := g.Successors(v)
		if err != nil {
			return nil, err
		}
		for {
			nb, ok := succ.Next()
			if !ok {
				break
			}
			rev[nb] = append(rev[nb], v)
		}
	}

	return BuildFromAdjacency(n, func(v int64) []int64 { return rev[v] })
}

// GraphBytes returns the raw compressed bit-stream (the G.graph artifact
// payload) for persistence by the offline builder; the offsets side file
// comes from OffsetsBytes.
func (g *Graph) GraphBytes() []byte {
	return g.data
}

// OffsetsBytes returns the serialized offsets array, as written to the
// G.offsets artifact.
func (g *Graph) OffsetsBytes() []byte {
	return encodeOffsets(g.offsets, g.numArcs)
}
