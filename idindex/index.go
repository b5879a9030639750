package idindex

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/swhgraph/internal/mph"
	"github.com/katalvlaran/swhgraph/pid"
)

// ErrUnknownPid indicates a PID is not present in the archive: either its
// textual form failed a round trip against node2pid, or it was well-formed
// but simply absent.
var ErrUnknownPid = errors.New("idindex: unknown pid")

// ErrOutOfRange indicates pid_of was queried for an id outside [0,N).
var ErrOutOfRange = errors.New("idindex: id out of range")

// Node2Pid resolves an internal node id to its textual PID, e.g. by seeking
// into a memory-mapped node2pid.csv side file at byte id*width.
type Node2Pid interface {
	// PidAt returns the PID stored for id, or ErrOutOfRange if id is not
	// in [0,N).
	PidAt(id int64) (string, error)

	// Len returns N, the number of node ids covered.
	Len() int64
}

// Index is the runtime identifier index: an MPH over the PID key set, the
// BFS permutation array (mph-ordinal -> internal id), and a Node2Pid for
// the reverse direction.
type Index struct {
	h       *mph.MPH
	perm    []int64 // perm[mphOrdinal] = internal id
	node2id Node2Pid
}

// New assembles an Index from its three already-built pieces. perm must
// have length h.N(); node2id must cover the same N nodes.
func New(h *mph.MPH, perm []int64, node2id Node2Pid) (*Index, error) {
	if int64(len(perm)) != int64(h.N()) {
		return nil, fmt.Errorf("idindex: perm length %d != mph size %d", len(perm), h.N())
	}
	if node2id.Len() != int64(h.N()) {
		return nil, fmt.Errorf("idindex: node2pid length %d != mph size %d", node2id.Len(), h.N())
	}

	return &Index{h: h, perm: perm, node2id: node2id}, nil
}

// IDOf looks up the internal node id for a textual PID. Fails with
// ErrUnknownPid if pidText does not parse, or parses but is not present in
// the archive (including the case where the MPH returns an ordinal for a
// non-member key and the round-trip check against node2pid fails).
func (idx *Index) IDOf(pidText string) (int64, error) {
	if _, err := pid.Parse(pidText); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnknownPid, err)
	}

	ordinal := idx.h.Lookup([]byte(pidText))
	if ordinal >= uint64(len(idx.perm)) {
		return 0, ErrUnknownPid
	}

	id := idx.perm[ordinal]

	got, err := idx.node2id.PidAt(id)
	if err != nil || got != pidText {
		return 0, ErrUnknownPid
	}

	return id, nil
}

// PIDOf looks up the textual PID for an internal node id. Fails with
// ErrOutOfRange if id is not in [0,N).
func (idx *Index) PIDOf(id int64) (string, error) {
	if id < 0 || id >= idx.node2id.Len() {
		return "", ErrOutOfRange
	}

	text, err := idx.node2id.PidAt(id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}

	return text, nil
}

// N returns the number of nodes this index covers.
func (idx *Index) N() int64 {
	return idx.node2id.Len()
}
