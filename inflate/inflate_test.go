package inflate

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biggeezerdevelopment/voltjson/buffer"
)

var all = []Encoding{None, Zlib, Gzip, Brotli, LZ4, Zstd}

func compress(t *testing.T, enc Encoding, data []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	var w io.WriteCloser
	switch enc {
	case None:
		return data
	case Zlib:
		w = zlib.NewWriter(&out)
	case Gzip:
		w = gzip.NewWriter(&out)
	case Brotli:
		w = brotli.NewWriter(&out)
	case LZ4:
		w = lz4.NewWriter(&out)
	case Zstd:
		zw, err := zstd.NewWriter(&out)
		require.NoError(t, err)
		w = zw
	}
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return out.Bytes()
}

func TestParseEncoding(t *testing.T) {
	for _, enc := range all {
		got, err := ParseEncoding(enc.String())
		require.NoError(t, err)
		assert.Equal(t, enc, got)
	}

	got, err := ParseEncoding("br")
	require.NoError(t, err)
	assert.Equal(t, Brotli, got)

	got, err = ParseEncoding("")
	require.NoError(t, err)
	assert.Equal(t, None, got)

	_, err = ParseEncoding("deflate64")
	assert.Error(t, err)
	assert.Equal(t, "unknown(200)", Encoding(200).String())
}

func TestDetect(t *testing.T) {
	payload := []byte(`{"op":0,"d":{}}`)
	for _, enc := range []Encoding{Zlib, Gzip, LZ4, Zstd} {
		assert.Equal(t, enc, Detect(compress(t, enc, payload)), enc.String())
	}

	for _, text := range []string{`{}`, `[1]`, `"x"`, `8`, `x`, ` `, ``, `null`} {
		assert.Equal(t, None, Detect([]byte(text)), "%q", text)
	}
}

func TestReadAll(t *testing.T) {
	payload := []byte(`{"t":"MESSAGE_CREATE","d":{"content":"` + strings.Repeat("hello ", 2000) + `"}}`)

	for _, enc := range all {
		t.Run(enc.String(), func(t *testing.T) {
			dst := buffer.New[byte](0, nil)
			defer dst.Release()

			n, err := ReadAll(&dst, bytes.NewReader(compress(t, enc, payload)), enc, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(len(payload)), n)
			assert.Equal(t, payload, dst.View())
		})
	}
}

func TestReadAllLimit(t *testing.T) {
	payload := bytes.Repeat([]byte("a"), 10000)

	for _, enc := range all {
		t.Run(enc.String(), func(t *testing.T) {
			dst := buffer.New[byte](0, nil)
			defer dst.Release()

			_, err := ReadAll(&dst, bytes.NewReader(compress(t, enc, payload)), enc, 100)
			assert.ErrorIs(t, err, buffer.ErrTooLarge)
			assert.Contains(t, err.Error(), enc.String())
		})
	}
}

func TestNewReaderRejectsBadHeaders(t *testing.T) {
	for _, enc := range []Encoding{Zlib, Gzip} {
		_, err := NewReader(strings.NewReader("not compressed"), enc)
		assert.Error(t, err, enc.String())
	}

	_, err := NewReader(strings.NewReader(""), Encoding(99))
	assert.Error(t, err)
}
