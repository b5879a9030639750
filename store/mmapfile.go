package store

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// mappedFile pairs an mmap.MMap with the *os.File it was opened from.
type mappedFile struct {
	f *os.File
	m mmap.MMap
}

// openMapped memory-maps path read-only. Every on-disk artifact this
// package touches goes through here rather than os.ReadFile, per the
// "resident on a single machine" requirement the compressed store exists
// to satisfy.
func openMapped(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("store: stat %s: %w", path, err)
	}
	if fi.Size() == 0 {
		// mmap.Map rejects zero-length files; callers of optional artifacts
		// check existence before calling openMapped, so reaching here with an
		// empty required artifact is itself corruption.
		f.Close()
		return nil, fmt.Errorf("%w: %s is empty", ErrArtifactCorrupt, path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("store: mmap %s: %w", path, err)
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

// fileExists reports whether path names a regular, readable file.
func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
