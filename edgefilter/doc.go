// Package edgefilter compiles textual edge-type specifications such as
// "dir:cnt,dir:dir,rev:dir" or "*:*" into a 6x6 boolean matrix over
// nodetype.NodeType pairs, so the traversal kernel can test "is src->dst
// allowed" in O(1).
//
// An empty spec denies all edges; "*:*" allows all; invalid tokens fail the
// compile with ErrBadSpec.
package edgefilter
