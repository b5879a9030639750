package properties

import (
	"encoding/base64"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultDecodeCacheSize bounds the number of decoded messages kept resident
// at once; §9's open question ("whether [base64 decoding] is cached is a
// policy decision left to the property-column layer") is resolved here in
// favor of caching, since release/revision messages are re-read often by
// statistical jobs walking the same hot subgraph repeatedly.
const defaultDecodeCacheSize = 4096

// BlobColumn is a concatenated-payload column with per-node start offsets:
// the message blob (base64-encoded) or the tag-name blob. MissingOffset
// means the node has no value.
type BlobColumn struct {
	blob    []byte
	offsets []int64 // length N+1; blob[offsets[id]:offsets[id+1]] is node id's payload
	base64  bool
	cache   *lru.Cache[int64, string]
}

// NewBlobColumn wraps blob+offsets (offsets has length N+1: offsets[N] is
// len(blob)) as a BlobColumn. If base64 is true, At decodes the stored
// payload before returning it and caches the decoded result.
func NewBlobColumn(blob []byte, offsets []int64, base64Encoded bool) (*BlobColumn, error) {
	c := &BlobColumn{blob: blob, offsets: offsets, base64: base64Encoded}
	if base64Encoded {
		cache, err := lru.New[int64, string](defaultDecodeCacheSize)
		if err != nil {
			return nil, fmt.Errorf("properties: allocating decode cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

// Len returns N, the number of nodes this column is defined over.
func (c *BlobColumn) Len() int64 {
	if c == nil || len(c.offsets) == 0 {
		return 0
	}

	return int64(len(c.offsets) - 1)
}

// At returns the payload for id, ok=false if id has no value (MissingOffset)
// or the column is nil (ErrNotLoaded is returned as an error in that case).
func (c *BlobColumn) At(id int64) (value string, ok bool, err error) {
	if c == nil {
		return "", false, ErrNotLoaded
	}
	if id < 0 || id >= c.Len() {
		return "", false, ErrOutOfRange
	}

	start := c.offsets[id]
	if start == MissingOffset {
		return "", false, nil
	}

	if c.base64 {
		if cached, hit := c.cache.Get(id); hit {
			return cached, true, nil
		}
	}

	end := c.offsets[id+1]
	if end == MissingOffset {
		// The next node has no value; the payload still runs to the blob's
		// end boundary for id, found by scanning forward for the next
		// non-missing offset (payloads are packed contiguously in id order).
		end = c.nextBoundary(id + 1)
	}

	raw := c.blob[start:end]
	if !c.base64 {
		return string(raw), true, nil
	}

	decoded, derr := base64.StdEncoding.DecodeString(string(raw))
	if derr != nil {
		return "", false, fmt.Errorf("properties: decoding message at id %d: %w", id, derr)
	}
	c.cache.Add(id, string(decoded))

	return string(decoded), true, nil
}

// nextBoundary scans forward from id for the next node with a real offset,
// falling back to the end of the blob.
func (c *BlobColumn) nextBoundary(id int64) int64 {
	for ; id < c.Len(); id++ {
		if c.offsets[id] != MissingOffset {
			return c.offsets[id]
		}
	}

	return int64(len(c.blob))
}

// EncodeBlobColumn packs values (index == internal node id) into the
// concatenated-blob + offsets layout. present[i] false marks node i as
// having no value at all (MissingOffset); a present empty string is stored
// as an empty payload.
func EncodeBlobColumn(values []string, present []bool) (blob []byte, offsets []int64) {
	offsets = make([]int64, len(values)+1)
	for i, v := range values {
		if !present[i] {
			offsets[i] = MissingOffset
			continue
		}
		offsets[i] = int64(len(blob))
		blob = append(blob, v...)
	}
	offsets[len(values)] = int64(len(blob))

	return blob, offsets
}
