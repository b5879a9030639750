package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds the §8 example graph:
//
//	0(ori) -> 1(snp) -> 2(rev) -> 3(dir) -> 4(cnt)
//	                       2         -> 5(dir) -> 6(cnt)
//	                       2 -> 7(rev)   (parent)
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

func TestBuildFromAdjacency_OutdegreeAndSuccessors(t *testing.T) {
	g, err := BuildFromAdjacency(8, fixtureAdjacency)
	require.NoError(t, err)
	assert.EqualValues(t, 8, g.NumNodes())
	assert.EqualValues(t, 7, g.NumArcs())

	deg, err := g.Outdegree(2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, deg)

	succ, err := g.Successors(2)
	require.NoError(t, err)
	var got []int64
	for {
		id, ok := succ.Next()
		if !ok {
			break
		}
		got = append(got, id)
	}
	assert.Equal(t, []int64{3, 5, 7}, got)
}

func TestSuccessors_StrictlyIncreasing(t *testing.T) {
	g, err := BuildFromAdjacency(8, fixtureAdjacency)
	require.NoError(t, err)

	for v := int64(0); v < g.NumNodes(); v++ {
		succ, err := g.Successors(v)
		require.NoError(t, err)
		prev := int64(-1)
		n := 0
		for {
			id, ok := succ.Next()
			if !ok {
				break
			}
			assert.Greater(t, id, prev)
			prev = id
			n++
		}
		deg, err := g.Outdegree(v)
		require.NoError(t, err)
		assert.EqualValues(t, deg, n)
	}
}

func TestTranspose_ReversesArcsAndMatchesCardinality(t *testing.T) {
	g, err := BuildFromAdjacency(8, fixtureAdjacency)
	require.NoError(t, err)

	tg, err := Transpose(g)
	require.NoError(t, err)
	assert.Equal(t, g.NumArcs(), tg.NumArcs())
	assert.Equal(t, g.NumNodes(), tg.NumNodes())

	// (2,3) is a forward arc => (3,2) must be a transposed arc.
	succ, err := tg.Successors(3)
	require.NoError(t, err)
	id, ok := succ.Next()
	require.True(t, ok)
	assert.EqualValues(t, 2, id)
}

func TestOutdegree_OutOfRange(t *testing.T) {
	g, err := BuildFromAdjacency(4, func(int64) []int64 { return nil })
	require.NoError(t, err)

	_, err = g.Outdegree(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestCopy_SharesBackingData(t *testing.T) {
	g, err := BuildFromAdjacency(8, fixtureAdjacency)
	require.NoError(t, err)

	dup := g.Copy()
	deg1, _ := g.Outdegree(2)
	deg2, _ := dup.Outdegree(2)
	assert.Equal(t, deg1, deg2)
}

func TestOffsets_EncodeDecodeRoundTrip(t *testing.T) {
	g, err := BuildFromAdjacency(8, fixtureAdjacency)
	require.NoError(t, err)

	offsets, numArcs, err := decodeOffsets(g.OffsetsBytes())
	require.NoError(t, err)
	assert.Equal(t, g.offsets, offsets)
	assert.Equal(t, g.numArcs, numArcs)
}

func TestOffsets_CorruptLengthDetected(t *testing.T) {
	g, err := BuildFromAdjacency(8, fixtureAdjacency)
	require.NoError(t, err)

	bad := g.OffsetsBytes()[:len(g.OffsetsBytes())-8]
	_, _, err = decodeOffsets(bad)
	assert.ErrorIs(t, err, ErrArtifactCorrupt)
}
