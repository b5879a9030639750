package idindex

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/swhgraph/internal/mph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturePids(n int) []string {
	pids := make([]string, n)
	for i := range pids {
		pids[i] = fmt.Sprintf("swh:1:cnt:%040x", i)
	}
	return pids
}

func buildIndex(t *testing.T, pids []string) *Index {
	t.Helper()
	keys := make([][]byte, len(pids))
	for i, p := range pids {
		keys[i] = []byte(p)
	}
	h, err := mph.Build(keys)
	require.NoError(t, err)

	// Identity permutation and node2pid ordered by pids for this fixture;
	// perm maps mph-ordinal -> internal id, so we derive it from lookups.
	perm := make([]int64, len(pids))
	for internalID, p := range pids {
		ordinal := h.Lookup([]byte(p))
		perm[ordinal] = int64(internalID)
	}

	idx, err := New(h, perm, NewSliceSource(pids))
	require.NoError(t, err)

	return idx
}

func TestIndex_RoundTrip(t *testing.T) {
	pids := fixturePids(300)
	idx := buildIndex(t, pids)

	for id, want := range pids {
		got, err := idx.PIDOf(int64(id))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		gotID, err := idx.IDOf(want)
		require.NoError(t, err)
		assert.EqualValues(t, id, gotID)
	}
}

func TestIndex_UnknownPid(t *testing.T) {
	idx := buildIndex(t, fixturePids(50))
	_, err := idx.IDOf(fmt.Sprintf("swh:1:ori:%040x", 0))
	assert.ErrorIs(t, err, ErrUnknownPid)
}

func TestIndex_PIDOf_OutOfRange(t *testing.T) {
	idx := buildIndex(t, fixturePids(10))
	_, err := idx.PIDOf(10)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNode2Pid_EncodeDecodeRoundTrip(t *testing.T) {
	pids := fixturePids(40)
	buf, err := EncodeNode2Pid(pids)
	require.NoError(t, err)

	src, err := WrapMmapSource(buf)
	require.NoError(t, err)
	assert.EqualValues(t, len(pids), src.Len())

	for id, want := range pids {
		got, err := src.PidAt(int64(id))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
