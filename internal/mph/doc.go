// Package mph builds and serves a minimal perfect hash function (MPH) over a
// known, fixed key set, using the compress-hash-displace (CHD) algorithm: keys
// are bucketed by a first-level hash, then each bucket is assigned a small
// per-bucket displacement seed so every key lands on its own slot in [0,n).
//
// Build is O(n) expected (bucket-local retries aside); Lookup is O(1) and
// allocation-free. Lookup(key) for a key outside the original set returns an
// arbitrary ordinal in [0,n) rather than an error — per spec, callers (the
// Identifier Index) must verify the round trip themselves.
package mph
