package idindex

import "fmt"

// pidTextWidth is the fixed width of one line in G.node2pid.csv: a 50-byte
// PID plus a trailing '\n' (spec.md §6).
const pidTextWidth = 51

// SliceSource is an in-memory Node2Pid, used by the offline builder while
// assembling the index (before the node2pid.csv artifact is written) and by
// tests and small fixtures.
type SliceSource struct {
	pids []string
}

// NewSliceSource wraps pids (index == internal node id) as a Node2Pid.
func NewSliceSource(pids []string) *SliceSource {
	return &SliceSource{pids: pids}
}

// PidAt returns pids[id], or ErrOutOfRange if id is out of bounds.
func (s *SliceSource) PidAt(id int64) (string, error) {
	if id < 0 || id >= int64(len(s.pids)) {
		return "", ErrOutOfRange
	}

	return s.pids[id], nil
}

// Len returns the number of PIDs held.
func (s *SliceSource) Len() int64 {
	return int64(len(s.pids))
}

// EncodeNode2Pid serializes pids (index == internal node id) into the
// fixed-width G.node2pid.csv layout: each line is exactly pidTextWidth
// bytes, so line i sits at byte offset i*pidTextWidth.
func EncodeNode2Pid(pids []string) ([]byte, error) {
	buf := make([]byte, 0, len(pids)*pidTextWidth)
	for i, p := range pids {
		if len(p) != pidTextWidth-1 {
			return nil, fmt.Errorf("idindex: pid at id %d has length %d, want %d", i, len(p), pidTextWidth-1)
		}
		buf = append(buf, p...)
		buf = append(buf, '\n')
	}

	return buf, nil
}

// MmapSource is a Node2Pid backed by a memory-mapped node2pid.csv buffer:
// PidAt seeks to byte id*pidTextWidth and reads pidTextWidth-1 bytes,
// exactly the lookup described in spec.md §4.2.
type MmapSource struct {
	buf []byte
	n   int64
}

// WrapMmapSource views buf (the full mapped node2pid.csv contents) as a
// Node2Pid. Returns an error if buf's length is not an exact multiple of
// pidTextWidth, per the corruption-at-load-time contract of spec.md §5.
func WrapMmapSource(buf []byte) (*MmapSource, error) {
	if len(buf)%pidTextWidth != 0 {
		return nil, fmt.Errorf("idindex: node2pid.csv length %d not a multiple of %d", len(buf), pidTextWidth)
	}

	return &MmapSource{buf: buf, n: int64(len(buf)) / pidTextWidth}, nil
}

// PidAt reads the PID stored at line id.
func (m *MmapSource) PidAt(id int64) (string, error) {
	if id < 0 || id >= m.n {
		return "", ErrOutOfRange
	}
	start := id * pidTextWidth
	line := m.buf[start : start+pidTextWidth-1] // drop trailing '\n'

	return string(line), nil
}

// Len returns N.
func (m *MmapSource) Len() int64 {
	return m.n
}
