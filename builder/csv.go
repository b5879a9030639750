package builder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// maxLineBytes bounds a single CSV line; PIDs are 50 bytes, so this is
// generous headroom rather than a tight limit.
const maxLineBytes = 1 << 16

// edge is one parsed line of edges.csv.gz: src then dst PID text.
type edge struct {
	src, dst string
}

// readNodesGz decodes nodes.csv.gz: one PID per line, sorted, unique.
func readNodesGz(path string) ([]string, error) {
	lines, err := readGzLines(path)
	if err != nil {
		return nil, fmt.Errorf("builder: reading %s: %w", path, err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	return lines, nil
}

// readEdgesGz decodes edges.csv.gz: "<src_pid> <dst_pid>" per line.
func readEdgesGz(path string) ([]edge, error) {
	lines, err := readGzLines(path)
	if err != nil {
		return nil, fmt.Errorf("builder: reading %s: %w", path, err)
	}

	edges := make([]edge, 0, len(lines))
	for i, line := range lines {
		parts := strings.Split(line, " ")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedEdgeLine, i, line)
		}
		edges = append(edges, edge{src: parts[0], dst: parts[1]})
	}

	return edges, nil
}

func readGzLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var lines []string
	sc := bufio.NewScanner(gz)
	sc.Buffer(make([]byte, maxLineBytes), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return nil, err
	}

	return lines, nil
}
