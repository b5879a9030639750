// Package properties implements the optional per-node side-car columns:
// content length, a skip bit, author/committer ids and timestamps (plus
// their UTC offsets), the base64-encoded commit/release message blob (with
// per-node start offsets), the tag name blob, and the front-coded edge-label
// dictionary.
//
// Every column is an array of length N; "missing" is encoded by a sentinel
// per spec.md §3 (math.MinInt64/MinInt16/-1 depending on column width).
// Querying an unopened column fails with ErrNotLoaded rather than panicking,
// so a store missing optional property files still answers topology
// queries.
package properties
