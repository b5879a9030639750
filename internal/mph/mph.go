package mph

import (
	"encoding/binary"
	"errors"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"
)

// ErrTooManyKeys indicates Build could not place every key into a bucket
// displacement seed within the configured retry budget.
var ErrTooManyKeys = errors.New("mph: displacement search exhausted retry budget")

// maxSeed bounds the per-bucket displacement search; real archives keep
// buckets small (avgBucketSize below) so this is reached only on adversarial
// or pathological key sets.
const maxSeed = 1 << 20

// avgBucketSize is the target number of keys per first-level bucket. Smaller
// buckets converge faster but grow the per-bucket seed table.
const avgBucketSize = 4

// MPH is a built minimal perfect hash over a fixed key set of size N.
type MPH struct {
	n    int
	segs uint64   // number of buckets
	g    []uint32 // per-bucket displacement seed
}

// N returns the number of keys the hash was built over.
func (m *MPH) N() int { return m.n }

// twoHashes derives two independent 64-bit hashes of key from one xxhash
// pass: h1 is the digest after key, h2 continues the rolling state with one
// extra byte. Both are deterministic functions of key alone.
func twoHashes(key []byte) (h1, h2 uint64) {
	var d xxhash.Digest
	d.Reset()
	_, _ = d.Write(key)
	h1 = d.Sum64()
	_, _ = d.Write([]byte{0xff})
	h2 = d.Sum64()

	return h1, h2
}

func bucketOf(h1 uint64, numBuckets uint64) uint64 {
	return h1 % numBuckets
}

func slotOf(h1, h2 uint64, seed uint32, n uint64) uint64 {
	return (h1 + uint64(seed)*h2) % n
}

// Build constructs a minimal perfect hash over keys. keys must be unique;
// behavior is undefined (but Build will not hang forever, bounded by
// ErrTooManyKeys) if they are not.
func Build(keys [][]byte) (*MPH, error) {
	n := len(keys)
	if n == 0 {
		return &MPH{n: 0, segs: 1, g: []uint32{0}}, nil
	}

	numBuckets := uint64(n)/avgBucketSize + 1
	type keyHash struct {
		idx    int
		h1, h2 uint64
	}

	buckets := make([][]keyHash, numBuckets)
	for i, k := range keys {
		h1, h2 := twoHashes(k)
		b := bucketOf(h1, numBuckets)
		buckets[b] = append(buckets[b], keyHash{idx: i, h1: h1, h2: h2})
	}

	// Process largest buckets first: they are hardest to place and benefit
	// from claiming slots while the most room remains (standard CHD order).
	order := make([]int, numBuckets)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return len(buckets[order[a]]) > len(buckets[order[b]])
	})

	taken := bitset.New(uint(n))
	g := make([]uint32, numBuckets)

	for _, b := range order {
		bucket := buckets[b]
		if len(bucket) == 0 {
			continue
		}

		placed := false
	seedSearch:
		for seed := uint32(0); seed < maxSeed; seed++ {
			slots := make([]uint64, len(bucket))
			seen := make(map[uint64]struct{}, len(bucket))
			for i, kh := range bucket {
				s := slotOf(kh.h1, kh.h2, seed, uint64(n))
				if taken.Test(uint(s)) {
					continue seedSearch
				}
				if _, dup := seen[s]; dup {
					continue seedSearch
				}
				seen[s] = struct{}{}
				slots[i] = s
			}

			for _, s := range slots {
				taken.Set(uint(s))
			}
			g[b] = seed
			placed = true

			break
		}

		if !placed {
			return nil, ErrTooManyKeys
		}
	}

	return &MPH{n: n, segs: numBuckets, g: g}, nil
}

// Lookup returns an ordinal in [0,N) for key. For a key in the original
// build set this is its unique slot; for any other key it is an arbitrary
// value in range, not an error -- callers must verify the round trip.
func (m *MPH) Lookup(key []byte) uint64 {
	h1, h2 := twoHashes(key)
	b := bucketOf(h1, m.segs)
	seed := m.g[b]

	return slotOf(h1, h2, seed, uint64(m.n))
}

// Marshal serializes the MPH to a compact binary form: n, bucket count, then
// the per-bucket seed array, all little-endian.
func (m *MPH) Marshal() []byte {
	out := make([]byte, 16+4*len(m.g))
	binary.LittleEndian.PutUint64(out[0:8], uint64(m.n))
	binary.LittleEndian.PutUint64(out[8:16], m.segs)
	for i, s := range m.g {
		binary.LittleEndian.PutUint32(out[16+4*i:], s)
	}

	return out
}

// Unmarshal parses the form written by Marshal.
func Unmarshal(data []byte) (*MPH, error) {
	if len(data) < 16 {
		return nil, errors.New("mph: truncated header")
	}
	n := binary.LittleEndian.Uint64(data[0:8])
	segs := binary.LittleEndian.Uint64(data[8:16])
	want := 16 + 4*int(segs)
	if len(data) < want {
		return nil, errors.New("mph: truncated bucket table")
	}

	g := make([]uint32, segs)
	for i := range g {
		g[i] = binary.LittleEndian.Uint32(data[16+4*i:])
	}

	return &MPH{n: int(n), segs: segs, g: g}, nil
}
