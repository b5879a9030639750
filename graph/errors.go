package graph

import "errors"

// ErrOutOfRange indicates a node id outside [0, NumNodes()) was queried.
var ErrOutOfRange = errors.New("graph: node id out of range")

// ErrArtifactCorrupt indicates a loaded graph/offsets pair failed its
// declared-node-count-against-file-length check, or a bit-stream read ran
// past the declared record for a node.
var ErrArtifactCorrupt = errors.New("graph: artifact corrupt")
