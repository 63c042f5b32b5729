package encryption

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPKCS7Padding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		length int64
		want   int
	}{
		{length: 0, want: 16},
		{length: 1, want: 15},
		{length: 10, want: 6},
		{length: 15, want: 1},
		{length: 16, want: 16},
		{length: 1<<20 + 3, want: 13},
	}

	for _, tc := range tests {
		got := pkcs7Padding(tc.length, aes.BlockSize)

		require.Len(t, got, tc.want, "length %d", tc.length)
		assert.Equal(t, bytes.Repeat([]byte{byte(tc.want)}, tc.want), got)
	}
}

func TestPKCS7Unpad(t *testing.T) {
	t.Parallel()

	valid := append([]byte("TEST BYTES"), bytes.Repeat([]byte{6}, 6)...)

	got, err := pkcs7Unpad(valid)
	require.NoError(t, err)
	assert.Equal(t, "TEST BYTES", string(got))

	full, err := pkcs7Unpad(bytes.Repeat([]byte{16}, 16))
	require.NoError(t, err)
	assert.Empty(t, full)

	invalid := map[string][]byte{
		"empty":        nil,
		"zero":         append(make([]byte, 15), 0),
		"too large":    append(make([]byte, 15), 17),
		"longer than":  {2},
		"inconsistent": append(bytes.Repeat([]byte{'a'}, 13), 1, 3, 3),
	}

	for name, data := range invalid {
		_, err := pkcs7Unpad(data)
		require.ErrorIs(t, err, ErrInvalidPadding, name)
	}
}

func TestWriteHeld(t *testing.T) {
	t.Parallel()

	var (
		out  bytes.Buffer
		tail = make([]byte, 0, 2*aes.BlockSize)
		err  error
	)

	input := []byte("abcdefghijklmnopqrstuvwxyz0123456789")

	// Feed uneven pieces; everything except the last block must be released in order.
	for _, piece := range [][]byte{input[:3], input[3:5], input[5:25], input[25:26], input[26:]} {
		tail, err = writeHeld(&out, tail, piece)
		require.NoError(t, err)
		require.LessOrEqual(t, len(tail), aes.BlockSize)
	}

	assert.Equal(t, input[:len(input)-aes.BlockSize], out.Bytes())
	assert.Equal(t, input[len(input)-aes.BlockSize:], tail)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	o := newOptions()
	assert.Equal(t, DefaultChunkSize, o.ChunkSize)
	assert.Equal(t, DefaultIterations, o.Iterations)
	assert.Nil(t, o.Progress)

	o = newOptions(WithChunkSize(3), WithIterations(-1))
	assert.Equal(t, MinChunkSize, o.ChunkSize)
	assert.Equal(t, DefaultIterations, o.Iterations)

	assert.Equal(t, 100, newOptions().fit(100).ChunkSize)
	assert.Equal(t, MinChunkSize, newOptions().fit(0).ChunkSize)
	assert.Equal(t, 512, newOptions(WithChunkSize(512)).fit(4096).ChunkSize)
}

func TestGetChunk(t *testing.T) {
	t.Parallel()

	buf, release := getChunk(DefaultChunkSize)
	require.Len(t, buf, DefaultChunkSize)

	buf[0] = 0xff
	release()
	assert.Zero(t, buf[0], "pooled buffers are cleared on release")

	small, release := getChunk(100)
	defer release()
	assert.Len(t, small, 100)
}
