package properties

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrNotLoaded indicates a property column was queried without having been
// opened on this Store (the artifact file was absent or not requested).
var ErrNotLoaded = errors.New("properties: column not loaded")

// ErrOutOfRange indicates a column was queried for an id outside [0,N).
var ErrOutOfRange = errors.New("properties: id out of range")

// ErrArtifactCorrupt indicates a column's backing buffer length does not
// match its declared element count and width.
var ErrArtifactCorrupt = errors.New("properties: artifact corrupt")

// MissingInt64 is the sentinel for an absent int64 column value.
const MissingInt64 = math.MinInt64

// MissingInt32 is the sentinel for an absent int32 column value.
const MissingInt32 = math.MinInt32

// MissingInt16 is the sentinel for an absent int16 column value.
const MissingInt16 = math.MinInt16

// MissingOffset is the sentinel used by blob offset columns (message, tag
// name) to mean "this node has no value".
const MissingOffset = -1

// Int64Column is a length-N array of int64 values, MissingInt64 meaning
// absent. Used for content length and author/committer timestamps.
type Int64Column struct {
	data []int64
}

// NewInt64Column wraps data (e.g. a memory-mapped region reinterpreted as
// int64s) directly, without copying.
func NewInt64Column(data []int64) *Int64Column { return &Int64Column{data: data} }

// DecodeInt64Column parses a big-endian 8-byte-per-entry buffer into a
// column, validating its length against the declared node count n.
func DecodeInt64Column(buf []byte, n int) (*Int64Column, error) {
	if len(buf) != 8*n {
		return nil, fmt.Errorf("%w: int64 column length %d, want %d", ErrArtifactCorrupt, len(buf), 8*n)
	}
	data := make([]int64, n)
	for i := range data {
		data[i] = int64(binary.BigEndian.Uint64(buf[8*i:]))
	}

	return &Int64Column{data: data}, nil
}

// EncodeInt64Column serializes a column in the layout DecodeInt64Column
// expects, for artifact construction by the offline builder.
func EncodeInt64Column(data []int64) []byte {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.BigEndian.PutUint64(buf[8*i:], uint64(v))
	}

	return buf
}

// At returns the value stored for id, or MissingInt64 if absent. Returns
// ErrOutOfRange for ids outside [0, Len()).
func (c *Int64Column) At(id int64) (int64, error) {
	if c == nil {
		return 0, ErrNotLoaded
	}
	if id < 0 || id >= int64(len(c.data)) {
		return 0, ErrOutOfRange
	}

	return c.data[id], nil
}

// Len returns the number of entries.
func (c *Int64Column) Len() int64 { return int64(len(c.data)) }

// Int32Column is the int32 analogue of Int64Column (author/committer ids).
type Int32Column struct {
	data []int32
}

func NewInt32Column(data []int32) *Int32Column { return &Int32Column{data: data} }

func DecodeInt32Column(buf []byte, n int) (*Int32Column, error) {
	if len(buf) != 4*n {
		return nil, fmt.Errorf("%w: int32 column length %d, want %d", ErrArtifactCorrupt, len(buf), 4*n)
	}
	data := make([]int32, n)
	for i := range data {
		data[i] = int32(binary.BigEndian.Uint32(buf[4*i:]))
	}

	return &Int32Column{data: data}, nil
}

func EncodeInt32Column(data []int32) []byte {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(v))
	}

	return buf
}

func (c *Int32Column) At(id int64) (int32, error) {
	if c == nil {
		return 0, ErrNotLoaded
	}
	if id < 0 || id >= int64(len(c.data)) {
		return 0, ErrOutOfRange
	}

	return c.data[id], nil
}

func (c *Int32Column) Len() int64 { return int64(len(c.data)) }

// Int16Column is the int16 analogue (timezone/UTC offsets), MissingInt16
// meaning absent.
type Int16Column struct {
	data []int16
}

func NewInt16Column(data []int16) *Int16Column { return &Int16Column{data: data} }

func DecodeInt16Column(buf []byte, n int) (*Int16Column, error) {
	if len(buf) != 2*n {
		return nil, fmt.Errorf("%w: int16 column length %d, want %d", ErrArtifactCorrupt, len(buf), 2*n)
	}
	data := make([]int16, n)
	for i := range data {
		data[i] = int16(binary.BigEndian.Uint16(buf[2*i:]))
	}

	return &Int16Column{data: data}, nil
}

func EncodeInt16Column(data []int16) []byte {
	buf := make([]byte, 2*len(data))
	for i, v := range data {
		binary.BigEndian.PutUint16(buf[2*i:], uint16(v))
	}

	return buf
}

func (c *Int16Column) At(id int64) (int16, error) {
	if c == nil {
		return 0, ErrNotLoaded
	}
	if id < 0 || id >= int64(len(c.data)) {
		return 0, ErrOutOfRange
	}

	return c.data[id], nil
}

func (c *Int16Column) Len() int64 { return int64(len(c.data)) }
