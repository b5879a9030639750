package builder

import (
	"github.com/katalvlaran/swhgraph/graph"
	"github.com/katalvlaran/swhgraph/idindex"
	"github.com/katalvlaran/swhgraph/nodetype"
)

// Artifacts is everything one Build invocation produces: the in-memory
// graph/index objects ready for immediate use, plus the serialized byte
// buffers the caller writes out under the chosen basename (G.mph, G.order,
// G.graph/offsets, G-transposed.graph/offsets, G.pid2node.csv,
// G.node2pid.csv, G.node2type.map).
type Artifacts struct {
	NumNodes int64
	NumArcs  int64

	Forward    *graph.Graph
	Transposed *graph.Graph
	Index      *idindex.Index
	Types      *nodetype.Table

	MPHBytes             []byte
	OrderBytes           []byte
	GraphBytes           []byte
	OffsetsBytes         []byte
	TransposedGraphBytes []byte
	TransposedOffsBytes  []byte
	Pid2NodeCSV          []byte
	Node2PidCSV          []byte
	Node2TypeMap         []byte
}

// encodeOrder serializes the order array as N big-endian 8-byte longs:
// order[i] = bfs_ordinal_of(mph_ordinal=i), the G.order artifact layout.
func encodeOrder(order []int64) []byte {
	buf := make([]byte, 8*len(order))
	for i, v := range order {
		putBigEndianInt64(buf[8*i:], v)
	}

	return buf
}

func putBigEndianInt64(b []byte, v int64) {
	u := uint64(v)
	b[0] = byte(u >> 56)
	b[1] = byte(u >> 48)
	b[2] = byte(u >> 40)
	b[3] = byte(u >> 32)
	b[4] = byte(u >> 24)
	b[5] = byte(u >> 16)
	b[6] = byte(u >> 8)
	b[7] = byte(u)
}

func encodeTypeWords(t *nodetype.Table) []byte {
	words := t.Words()
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		for b := 0; b < 8; b++ {
			buf[8*i+b] = byte(w >> (8 * b))
		}
	}

	return buf
}
