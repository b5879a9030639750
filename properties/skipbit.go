package properties

import "github.com/bits-and-blooms/bitset"

// SkipColumn is the per-node "skip" flag (content objects whose bytes were
// not ingested, e.g. because they exceeded a size threshold), stored as a
// single bit per node.
type SkipColumn struct {
	bits *bitset.BitSet
	n    int64
}

// NewSkipColumn allocates a cleared SkipColumn for n nodes.
func NewSkipColumn(n int64) *SkipColumn {
	return &SkipColumn{bits: bitset.New(uint(n)), n: n}
}

// WrapSkipColumn views an existing bit vector (e.g. unmarshalled from a
// mapped artifact) as a SkipColumn of n entries.
func WrapSkipColumn(bits *bitset.BitSet, n int64) *SkipColumn {
	return &SkipColumn{bits: bits, n: n}
}

// Set marks id as skipped.
func (c *SkipColumn) Set(id int64) error {
	if id < 0 || id >= c.n {
		return ErrOutOfRange
	}
	c.bits.Set(uint(id))

	return nil
}

// At reports whether id was skipped.
func (c *SkipColumn) At(id int64) (bool, error) {
	if c == nil {
		return false, ErrNotLoaded
	}
	if id < 0 || id >= c.n {
		return false, ErrOutOfRange
	}

	return c.bits.Test(uint(id)), nil
}

// Bytes serializes the skip column for the G.property.skip.bin artifact.
func (c *SkipColumn) Bytes() ([]byte, error) {
	return c.bits.MarshalBinary()
}

// DecodeSkipColumn parses the layout written by Bytes.
func DecodeSkipColumn(buf []byte, n int64) (*SkipColumn, error) {
	bs := &bitset.BitSet{}
	if err := bs.UnmarshalBinary(buf); err != nil {
		return nil, err
	}

	return &SkipColumn{bits: bs, n: n}, nil
}
