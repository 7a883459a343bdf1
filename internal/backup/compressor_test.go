package backup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_RoundTrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	input := bytes.Repeat([]byte(`{"title":"Ghar ki baat","views":12}`), 200)
	packed, err := c.Compress(input)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(input))

	out, err := c.Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestZstdCompressor_DecompressGarbage(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("definitely not zstd"))
	assert.Error(t, err)
}
