package properties

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64Column_EncodeDecodeRoundTrip(t *testing.T) {
	data := []int64{10, MissingInt64, -5, 42}
	buf := EncodeInt64Column(data)
	col, err := DecodeInt64Column(buf, len(data))
	require.NoError(t, err)

	for i, want := range data {
		got, err := col.At(int64(i))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestInt64Column_NotLoaded(t *testing.T) {
	var col *Int64Column
	_, err := col.At(0)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestSkipColumn_SetAndAt(t *testing.T) {
	col := NewSkipColumn(10)
	require.NoError(t, col.Set(3))
	require.NoError(t, col.Set(7))

	for i := int64(0); i < 10; i++ {
		skipped, err := col.At(i)
		require.NoError(t, err)
		assert.Equal(t, i == 3 || i == 7, skipped)
	}
}

func TestSkipColumn_EncodeDecode(t *testing.T) {
	col := NewSkipColumn(20)
	require.NoError(t, col.Set(5))

	buf, err := col.Bytes()
	require.NoError(t, err)

	col2, err := DecodeSkipColumn(buf, 20)
	require.NoError(t, err)

	skipped, err := col2.At(5)
	require.NoError(t, err)
	assert.True(t, skipped)
}

func TestBlobColumn_PlainText(t *testing.T) {
	values := []string{"hello", "", "world"}
	present := []bool{true, false, true}
	blob, offsets := EncodeBlobColumn(values, present)

	col, err := NewBlobColumn(blob, offsets, false)
	require.NoError(t, err)

	v, ok, err := col.At(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	_, ok, err = col.At(1)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = col.At(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "world", v)
}

func TestBlobColumn_Base64DecodesAndCaches(t *testing.T) {
	raw := []string{"fix: off-by-one", "release v1.2"}
	encoded := make([]string, len(raw))
	for i, s := range raw {
		encoded[i] = base64.StdEncoding.EncodeToString([]byte(s))
	}
	present := []bool{true, true}
	blob, offsets := EncodeBlobColumn(encoded, present)

	col, err := NewBlobColumn(blob, offsets, true)
	require.NoError(t, err)

	for i, want := range raw {
		v, ok, err := col.At(int64(i))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, v)

		// second read should hit the decode cache and still match.
		v2, ok2, err2 := col.At(int64(i))
		require.NoError(t, err2)
		assert.True(t, ok2)
		assert.Equal(t, want, v2)
	}
}

func TestLabelDict_RoundTrip(t *testing.T) {
	labels := []string{"LICENSE", "Makefile", "README.md", "src", "src/main.go", "src/util.go", "zzz-last"}
	b := NewLabelDictBuilder()
	for _, l := range labels {
		b.Add(l)
	}
	dict := b.Build()
	require.Equal(t, len(labels), dict.Len())

	for i, want := range labels {
		got, err := dict.At(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestLabelDict_EncodeDecodeRoundTrip(t *testing.T) {
	labels := make([]string, 40)
	for i := range labels {
		labels[i] = string(rune('a'+i%26)) + "-label"
	}
	b := NewLabelDictBuilder()
	for _, l := range labels {
		b.Add(l)
	}
	dict := b.Build()

	buf := dict.Bytes()
	dict2, err := DecodeLabelDict(buf)
	require.NoError(t, err)
	require.Equal(t, dict.Len(), dict2.Len())

	for i := 0; i < dict.Len(); i++ {
		got, err := dict2.At(i)
		require.NoError(t, err)
		assert.Equal(t, labels[i], got)
	}
}
