package traversal

import (
	"testing"

	"github.com/katalvlaran/swhgraph/edgefilter"
	"github.com/katalvlaran/swhgraph/graph"
	"github.com/katalvlaran/swhgraph/nodetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds the example graph used throughout the package test suites:
//
//	0(ori) -> 1(snp) -> 2(rev) -> 3(dir) -> 4(cnt)
//	                       2         -> 5(dir) -> 6(cnt)
//	                       2 -> 7(rev)   (parent revision)
func fixtureAdjacency(v int64) []int64 {
	switch v {
	case 0:
		return []int64{1}
	case 1:
		return []int64{2}
	case 2:
		return []int64{3, 5, 7}
	case 3:
		return []int64{4}
	case 5:
		return []int64{6}
	default:
		return nil
	}
}

var fixtureTypes = [8]nodetype.NodeType{
	0: nodetype.Origin,
	1: nodetype.Snapshot,
	2: nodetype.Revision,
	3: nodetype.Directory,
	4: nodetype.Content,
	5: nodetype.Directory,
	6: nodetype.Content,
	7: nodetype.Revision,
}

var fixturePIDs = [8]string{
	0: "ori:1", 1: "snp:1", 2: "rev:2", 3: "dir:3",
	4: "cnt:4", 5: "dir:5", 6: "cnt:6", 7: "rev:7",
}

// fakeResolver implements Resolver over the fixture's small in-memory tables,
// standing in for a store.Store-backed resolver in these unit tests.
type fakeResolver struct{}

func (fakeResolver) IDOf(pidText string) (int64, error) {
	for id, p := range fixturePIDs {
		if p == pidText {
			return int64(id), nil
		}
	}
	return 0, ErrUnknownPid
}

func (fakeResolver) PIDOf(id int64) (string, error) {
	if id < 0 || int(id) >= len(fixturePIDs) {
		return "", ErrUnknownPid
	}
	return fixturePIDs[id], nil
}

func (fakeResolver) NodeType(id int64) (nodetype.NodeType, error) {
	if id < 0 || int(id) >= len(fixtureTypes) {
		return 0, nodetype.ErrOutOfRange
	}
	return fixtureTypes[id], nil
}

func newFixtureKernel(t *testing.T) *Kernel {
	t.Helper()

	g, err := graph.BuildFromAdjacency(8, fixtureAdjacency)
	require.NoError(t, err)
	tg, err := graph.Transpose(g)
	require.NoError(t, err)

	return NewKernel(g, tg, fakeResolver{})
}

func TestKernel_Nodes_Forward_AllowAll(t *testing.T) {
	k := newFixtureKernel(t)

	res, err := k.Run("ori:1", Forward, edgefilter.AllowAll(), Nodes)
	require.NoError(t, err)
	assert.Equal(t, []string{"ori:1", "snp:1", "rev:2", "dir:3", "cnt:4", "dir:5", "cnt:6", "rev:7"}, res.Nodes)
}

func TestKernel_Nodes_Backward_FromLeaf(t *testing.T) {
	k := newFixtureKernel(t)

	res, err := k.Run("cnt:4", Backward, edgefilter.AllowAll(), Nodes)
	require.NoError(t, err)
	assert.Equal(t, []string{"cnt:4", "dir:3", "rev:2", "snp:1", "ori:1"}, res.Nodes)
}

func TestKernel_Paths_FilteredFromRevision(t *testing.T) {
	k := newFixtureKernel(t)

	filter, err := edgefilter.Compile("rev:dir,dir:cnt,dir:dir")
	require.NoError(t, err)

	res, err := k.Run("rev:2", Forward, filter, Paths)
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]string{
		{"rev:2", "dir:3", "cnt:4"},
		{"rev:2", "dir:5", "cnt:6"},
	}, res.Paths)
}

func TestKernel_Nodes_SingleHopFilteredSuccessors(t *testing.T) {
	k := newFixtureKernel(t)

	filter, err := edgefilter.Compile("snp:rev")
	require.NoError(t, err)

	res, err := k.Run("snp:1", Forward, filter, Nodes)
	require.NoError(t, err)
	assert.Equal(t, []string{"snp:1", "rev:2"}, res.Nodes)
}

func TestKernel_IDOf_UnknownPid(t *testing.T) {
	k := newFixtureKernel(t)

	_, err := k.Run("swh:1:cnt:0000000000000000000000000000000000000000", Forward, edgefilter.AllowAll(), Nodes)
	assert.ErrorIs(t, err, ErrUnknownPid)
}

func TestKernel_Nodes_SelfTypeOnly(t *testing.T) {
	k := newFixtureKernel(t)

	filter, err := edgefilter.Compile("rev:rev")
	require.NoError(t, err)

	res, err := k.Run("rev:7", Forward, filter, Nodes)
	require.NoError(t, err)
	assert.Equal(t, []string{"rev:7"}, res.Nodes)
}

func TestKernel_Paths_DepthCapExceeded(t *testing.T) {
	// A 3-node cycle under a permissive filter has no leaf, so Paths mode
	// must hit the depth cap rather than loop forever.
	g, err := graph.BuildFromAdjacency(3, func(v int64) []int64 {
		return []int64{(v + 1) % 3}
	})
	require.NoError(t, err)
	tg, err := graph.Transpose(g)
	require.NoError(t, err)

	resolver := cycleResolver{pids: [3]string{"cnt:a", "cnt:b", "cnt:c"}}
	k := NewKernel(g, tg, resolver)

	_, err = k.Run(resolver.pids[0], Forward, edgefilter.AllowAll(), Paths, WithMaxPathDepth(5))
	assert.ErrorIs(t, err, ErrPathDepthExceeded)
}

// cycleResolver is a 3-node all-Content resolver for the cycle depth-cap test.
type cycleResolver struct {
	pids [3]string
}

func (r cycleResolver) IDOf(pidText string) (int64, error) {
	for i, p := range r.pids {
		if p == pidText {
			return int64(i), nil
		}
	}
	return 0, ErrUnknownPid
}

func (r cycleResolver) PIDOf(id int64) (string, error) {
	if id < 0 || int(id) >= len(r.pids) {
		return "", ErrUnknownPid
	}
	return r.pids[id], nil
}

func (r cycleResolver) NodeType(id int64) (nodetype.NodeType, error) {
	if id < 0 || id >= 3 {
		return 0, nodetype.ErrOutOfRange
	}
	return nodetype.Content, nil
}
