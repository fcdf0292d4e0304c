package issvg

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestInflate(t *testing.T) {
	payload := bytes.Repeat([]byte("<g/>"), 100)
	data := compress(t, payload)

	require.True(t, isGzip(data))

	out, err := inflate(data, 0)
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	out, err = inflate(data, int64(len(payload)))
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	_, err = inflate(data, int64(len(payload)-1))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = inflate([]byte("\x1f\x8bnot gzip"), 0)
	assert.ErrorIs(t, err, ErrCompression)
}

func TestIsGzip(t *testing.T) {
	assert.True(t, isGzip([]byte{0x1f, 0x8b}))
	assert.False(t, isGzip([]byte{0x1f}))
	assert.False(t, isGzip([]byte("<svg/>")))
	assert.False(t, isGzip(nil))
}
