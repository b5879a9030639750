package graph

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/swhgraph/internal/bitio"
)

// Graph is a bit-compressed, read-only adjacency list. A forward Graph and
// its transposed twin are both values of this same type, built from the two
// arc orderings of the same edge set.
type Graph struct {
	data    []byte  // bit-compressed successor records (mmapped or in-memory)
	offsets []int64 // bit offset of node i's record; len == n+1, last = total bits
	numArcs int64
}

// NumNodes returns the number of nodes this graph is defined over.
func (g *Graph) NumNodes() int64 {
	if len(g.offsets) == 0 {
		return 0
	}

	return int64(len(g.offsets) - 1)
}

// NumArcs returns the total number of arcs stored.
func (g *Graph) NumArcs() int64 {
	return g.numArcs
}

func (g *Graph) checkRange(v int64) error {
	if v < 0 || v >= g.NumNodes() {
		return fmt.Errorf("%w: id %d, n %d", ErrOutOfRange, v, g.NumNodes())
	}

	return nil
}

// Outdegree returns the number of successors of v.
func (g *Graph) Outdegree(v int64) (int64, error) {
	if err := g.checkRange(v); err != nil {
		return 0, err
	}

	r := bitio.NewReader(g.data)
	r.Seek(g.offsets[v])
	deg, err := r.ReadGamma()
	if err != nil {
		return 0, fmt.Errorf("%w: reading outdegree of %d: %v", ErrArtifactCorrupt, v, err)
	}

	return int64(deg), nil
}

// Successors returns a lazy, strictly increasing sequence of v's
// successor ids. The sequence reads directly from the shared backing
// buffer via its own bitio.Reader cursor.
func (g *Graph) Successors(v int64) (Successors, error) {
	if err := g.checkRange(v); err != nil {
		return nil, err
	}

	r := bitio.NewReader(g.data)
	r.Seek(g.offsets[v])
	deg, err := r.ReadGamma()
	if err != nil {
		return nil, fmt.Errorf("%w: reading outdegree of %d: %v", ErrArtifactCorrupt, v, err)
	}

	return &successorIter{r: r, remaining: int64(deg), prev: -1}, nil
}

// Copy returns a lightweight duplicate of g. The backing byte slices and
// offsets array are shared (never mutated after Open/BuildFromAdjacency); only
// a thin wrapper value is allocated.
func (g *Graph) Copy() View {
	dup := *g

	return &dup
}

// successorIter decodes one node's gap-coded successor list on demand.
type successorIter struct {
	r         *bitio.Reader
	remaining int64
	prev      int64 // -1 before the first successor
}

// Next decodes the next successor id, or returns ok=false once the
// record is exhausted.
func (s *successorIter) Next() (int64, bool) {
	if s.remaining <= 0 {
		return 0, false
	}

	gap, err := s.r.ReadGamma()
	if err != nil {
		return 0, false
	}

	var next int64
	if s.prev < 0 {
		next = int64(gap)
	} else {
		next = s.prev + 1 + int64(gap)
	}
	s.prev = next
	s.remaining--

	return next, true
}

// serializedHeaderLen is the size, in bytes, of the fixed header written at
// the start of an offsets-file artifact: node count and arc count, both
// big-endian uint64 (matching the on-disk G.order convention of spec.md §6).
const serializedHeaderLen = 16

// encodeOffsets serializes offsets (n+1 entries) and numArcs into the
// G.offsets artifact layout: a 16-byte header then n+1 big-endian uint64
// bit-offsets.
func encodeOffsets(offsets []int64, numArcs int64) []byte {
	n := len(offsets) - 1
	buf := make([]byte, serializedHeaderLen+8*len(offsets))
	binary.BigEndian.PutUint64(buf[0:8], uint64(n))
	binary.BigEndian.PutUint64(buf[8:16], uint64(numArcs))
	for i, off := range offsets {
		binary.BigEndian.PutUint64(buf[serializedHeaderLen+8*i:], uint64(off))
	}

	return buf
}

// decodeOffsets parses the layout written by encodeOffsets, validating that
// buf's length matches the declared node count exactly (spec.md §5: "the
// runtime rejects partially-written artifacts by checking declared node
// count against file lengths").
func decodeOffsets(buf []byte) (offsets []int64, numArcs int64, err error) {
	if len(buf) < serializedHeaderLen {
		return nil, 0, fmt.Errorf("%w: offsets header truncated", ErrArtifactCorrupt)
	}
	n := binary.BigEndian.Uint64(buf[0:8])
	numArcs = int64(binary.BigEndian.Uint64(buf[8:16]))

	want := serializedHeaderLen + 8*(int(n)+1)
	if len(buf) != want {
		return nil, 0, fmt.Errorf("%w: offsets length %d, want %d for n=%d", ErrArtifactCorrupt, len(buf), want, n)
	}

	offsets = make([]int64, n+1)
	for i := range offsets {
		offsets[i] = int64(binary.BigEndian.Uint64(buf[serializedHeaderLen+8*i:]))
	}

	return offsets, numArcs, nil
}
