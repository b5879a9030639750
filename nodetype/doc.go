// Package nodetype defines the six Software Heritage node types (content,
// directory, revision, release, snapshot, origin) and the packed bit-vector
// used to store one type per internal node id.
//
// Each type has an ordinal in [0,5]; the packed table spends exactly 3 bits
// per node, little-endian within a 64-bit word, ascending id mapping to
// ascending bit position — this layout is part of the on-disk format and
// must stay stable across implementations.
//
// Errors:
//
//	ErrOutOfRange - type_of(id) queried for id >= N.
package nodetype
