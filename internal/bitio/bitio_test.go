package bitio

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamma_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 3, 7, 8, 255, 256, 1000000, 1 << 40}
	w := NewWriter()
	for _, v := range values {
		w.WriteGamma(v)
	}
	r := NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.ReadGamma()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestGamma_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var values []uint64
	for i := 0; i < 2000; i++ {
		values = append(values, uint64(rng.Intn(1<<20)))
	}

	w := NewWriter()
	for _, v := range values {
		w.WriteGamma(v)
	}
	r := NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.ReadGamma()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReader_Clone_IndependentCursors(t *testing.T) {
	w := NewWriter()
	w.WriteGamma(5)
	offsetOfSecond := w.BitLen()
	w.WriteGamma(9)
	buf := w.Bytes()

	base := NewReader(buf)
	first, err := base.ReadGamma()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), first)

	clone := base.Clone(offsetOfSecond)
	second, err := clone.ReadGamma()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), second)

	// base's own cursor is unaffected by the clone's reads.
	assert.Equal(t, offsetOfSecond, base.Tell())
}

func TestReader_EndOfStream(t *testing.T) {
	r := NewReader([]byte{0x00})
	_, err := r.ReadFixed(9)
	assert.ErrorIs(t, err, ErrEndOfStream)
}
