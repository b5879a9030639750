package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/swhgraph/builder"
	"github.com/katalvlaran/swhgraph/traversal"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePID(typeToken string, n int) string {
	return fmt.Sprintf("swh:1:%s:%040x", typeToken, n)
}

func writeGz(t *testing.T, path string, lines []string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	for _, l := range lines {
		_, err := gz.Write([]byte(l + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())
}

func writeArtifacts(t *testing.T, basename string, art *builder.Artifacts) {
	t.Helper()
	files := map[string][]byte{
		basename + ".graph":                   art.GraphBytes,
		basename + ".offsets":                  art.OffsetsBytes,
		basename + "-transposed.graph":         art.TransposedGraphBytes,
		basename + "-transposed.offsets":       art.TransposedOffsBytes,
		basename + ".mph":                      art.MPHBytes,
		basename + ".order":                    art.OrderBytes,
		basename + ".node2pid.csv":             art.Node2PidCSV,
		basename + ".node2type.map":            art.Node2TypeMap,
	}
	for path, data := range files {
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
}

// buildFixtureStore runs the offline builder over the spec example graph and
// opens the result as a Store.
func buildFixtureStore(t *testing.T) (*Store, map[string]string) {
	t.Helper()

	pids := map[string]string{
		"ori1": fixturePID("ori", 1),
		"snp1": fixturePID("snp", 1),
		"rev2": fixturePID("rev", 2),
		"dir3": fixturePID("dir", 3),
		"cnt4": fixturePID("cnt", 4),
		"dir5": fixturePID("dir", 5),
		"cnt6": fixturePID("cnt", 6),
		"rev7": fixturePID("rev", 7),
	}

	nodes := make([]string, 0, len(pids))
	for _, p := range pids {
		nodes = append(nodes, p)
	}
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j] < nodes[j-1]; j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}

	edgeLines := []string{
		pids["ori1"] + " " + pids["snp1"],
		pids["snp1"] + " " + pids["rev2"],
		pids["rev2"] + " " + pids["dir3"],
		pids["rev2"] + " " + pids["dir5"],
		pids["rev2"] + " " + pids["rev7"],
		pids["dir3"] + " " + pids["cnt4"],
		pids["dir5"] + " " + pids["cnt6"],
	}

	dir := t.TempDir()
	nodesPath := filepath.Join(dir, "nodes.csv.gz")
	edgesPath := filepath.Join(dir, "edges.csv.gz")
	writeGz(t, nodesPath, nodes)
	writeGz(t, edgesPath, edgeLines)

	art, err := builder.Build(context.Background(), nodesPath, edgesPath)
	require.NoError(t, err)

	basename := filepath.Join(dir, "G")
	writeArtifacts(t, basename, art)

	s, err := NewStore(basename)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, pids
}

func TestStore_IDAndPIDRoundTrip(t *testing.T) {
	s, pids := buildFixtureStore(t)

	id, err := s.IDOf(pids["rev2"])
	require.NoError(t, err)

	back, err := s.PIDOf(id)
	require.NoError(t, err)
	assert.Equal(t, pids["rev2"], back)

	typ, err := s.NodeType(id)
	require.NoError(t, err)
	assert.Equal(t, "rev", typ.String())
}

func TestStore_Neighbors_Filtered(t *testing.T) {
	s, pids := buildFixtureStore(t)

	got, err := s.Neighbors(pids["snp1"], traversal.Forward, "snp:rev")
	require.NoError(t, err)
	assert.Equal(t, []string{pids["rev2"]}, got)
}

func TestStore_Visit_Nodes_Forward(t *testing.T) {
	s, pids := buildFixtureStore(t)

	res, err := s.Visit(pids["ori1"], traversal.Forward, "*:*", traversal.Nodes)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		pids["ori1"], pids["snp1"], pids["rev2"], pids["dir3"],
		pids["cnt4"], pids["dir5"], pids["cnt6"], pids["rev7"],
	}, res.Nodes)
}

func TestStore_Walk_Paths_Filtered(t *testing.T) {
	s, pids := buildFixtureStore(t)

	res, err := s.Walk(pids["rev2"], traversal.Forward, "rev:dir,dir:cnt,dir:dir", traversal.Paths)
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]string{
		{pids["rev2"], pids["dir3"], pids["cnt4"]},
		{pids["rev2"], pids["dir5"], pids["cnt6"]},
	}, res.Paths)
}

func TestStore_Duplicate_SharesState(t *testing.T) {
	s, pids := buildFixtureStore(t)

	h := s.Duplicate()
	id, err := h.IDOf(pids["cnt4"])
	require.NoError(t, err)

	typ, err := h.NodeType(id)
	require.NoError(t, err)
	assert.Equal(t, "cnt", typ.String())
	assert.NoError(t, h.Close())
}

func TestStore_PropertyNotLoaded(t *testing.T) {
	s, _ := buildFixtureStore(t)

	_, err := s.PropertyContentLength(0)
	assert.ErrorIs(t, err, ErrPropertyNotLoaded)
}

func TestStore_DoubleCloseRejected(t *testing.T) {
	s, _ := buildFixtureStore(t)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), ErrAlreadyClosed)
}
