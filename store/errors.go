package store

import "errors"

// ErrArtifactCorrupt indicates an artifact's on-disk length or header does
// not match its declared size.
var ErrArtifactCorrupt = errors.New("store: artifact corrupt")

// ErrPropertyNotLoaded indicates a property getter was called for a column
// this Store was not opened with.
var ErrPropertyNotLoaded = errors.New("store: property column not loaded")

// ErrAlreadyClosed indicates Close was called more than once on the same
// Store. Closing a Handle from Duplicate never returns it.
var ErrAlreadyClosed = errors.New("store: already closed")
