// Package store is the runtime query surface: it opens one basename's worth
// of build artifacts (compressed forward and transposed graphs, the
// identifier index, the packed type table, and whichever property columns
// are present) as memory-mapped, read-only regions and answers typed
// traversal queries over them.
//
// Every artifact is opened via mmap.Map; a Store's Duplicate method
// hands out a lightweight per-thread view that shares the same backing
// buffers but owns independent read cursors, matching the O(1)-in-bytes-
// mapped duplication contract the typed traversal kernel relies on.
package store
