package graph

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// mappedFile pairs an mmap.MMap with the *os.File it was opened from, so
// Close can release both. Kept unexported: callers only see the resulting
// Graph and a Closer.
type mappedFile struct {
	f *os.File
	m mmap.MMap
}

func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: open %s: %w", path, err)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("graph: mmap %s: %w", path, err)
	}

	return &mappedFile{f: f, m: m}, nil
}

func (mf *mappedFile) Close() error {
	err := mf.m.Unmap()
	if cerr := mf.f.Close(); err == nil {
		err = cerr
	}

	return err
}

// Mapped is an opened Graph backed by memory-mapped .graph/.offsets
// artifacts. Close releases both mappings and must be called exactly once
// per Open.
type Mapped struct {
	*Graph
	graphFile   *mappedFile
	offsetsFile *mappedFile
}

// Open memory-maps graphPath (the G.graph or G-transposed.graph artifact)
// and offsetsPath (its matching .offsets side file), validating that the
// offsets header's declared node count matches the offsets file length
// before exposing any query surface.
func Open(graphPath, offsetsPath string) (*Mapped, error) {
	gf, err := openMapped(graphPath)
	if err != nil {
		return nil, err
	}

	of, err := openMapped(offsetsPath)
	if err != nil {
		gf.Close()
		return nil, err
	}

	offsets, numArcs, err := decodeOffsets(of.m)
	if err != nil {
		gf.Close()
		of.Close()
		return nil, err
	}

	return &Mapped{
		Graph:       &Graph{data: gf.m, offsets: offsets, numArcs: numArcs},
		graphFile:   gf,
		offsetsFile: of,
	}, nil
}

// Close unmaps both artifacts. Safe to call once; calling it again is a
// programming error (the underlying os.File/mmap.MMap are not idempotent),
// but the enclosing store.Store guarantees exactly one call per Open.
func (m *Mapped) Close() error {
	err := m.graphFile.Close()
	if oerr := m.offsetsFile.Close(); err == nil {
		err = oerr
	}

	return err
}
