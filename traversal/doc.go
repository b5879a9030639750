// Package traversal implements the typed traversal kernel: edge-restricted
// DFS over a graph.View, producing visited-node sets, root-to-leaf path
// lists, or both, directionally (forward over the arc graph, backward over
// its transpose).
//
// Recursion depth in the real archive exceeds safe stack limits, so the DFS
// here is written as an explicit stack of (nodeId, successor-iterator)
// frames rather than recursive calls, per the design notes of the system
// this package implements.
//
// Nodes mode keeps a visited bitmap and emits each node once; Paths and
// NodesAndPaths modes follow the root-to-leaf algorithm that does not
// consult a visited set, so callers must supply an edge filter that induces
// a DAG on cyclic inputs (WithMaxPathDepth bounds runaway recursion with
// ErrPathDepthExceeded).
package traversal
