// Package bitio implements the bit-level reader and writer shared by the
// forward and transposed compressed graphs: Elias-gamma variable-length
// codes over a byte buffer, most-significant-bit first within each byte.
//
// A Reader is cheap to duplicate (O(1), no copy of the underlying buffer) so
// that each traversal thread can hold its own cursor over a shared mmapped
// region, per the lightweight-duplicate discipline of the runtime store.
package bitio
