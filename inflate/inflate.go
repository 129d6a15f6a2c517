// Package inflate decompresses JSON payloads into pooled buffers before
// they are decoded.
package inflate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/biggeezerdevelopment/voltjson/buffer"
)

// Encoding identifies the compression applied to a payload.
type Encoding uint8

const (
	// None is an uncompressed payload.
	None Encoding = iota
	// Zlib is an RFC 1950 stream, as sent by gateway transports.
	Zlib
	// Gzip is an RFC 1952 stream.
	Gzip
	// Brotli is an RFC 7932 stream. It has no magic number, so Detect
	// never reports it.
	Brotli
	// LZ4 is an LZ4 frame.
	LZ4
	// Zstd is a zstandard frame.
	Zstd
)

// String returns the name ParseEncoding accepts.
func (e Encoding) String() string {
	switch e {
	case None:
		return "none"
	case Zlib:
		return "zlib"
	case Gzip:
		return "gzip"
	case Brotli:
		return "brotli"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", e)
	}
}

// ParseEncoding parses an encoding name.
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "none", "":
		return None, nil
	case "zlib":
		return Zlib, nil
	case "gzip":
		return Gzip, nil
	case "brotli", "br":
		return Brotli, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown encoding: %q", name)
	}
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Detect guesses the encoding from the leading bytes of a payload. JSON
// text never starts with any of the recognised headers.
func Detect(head []byte) Encoding {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return Gzip
	case bytes.HasPrefix(head, magicLZ4):
		return LZ4
	case bytes.HasPrefix(head, magicZstd):
		return Zstd
	case len(head) >= 2 && head[0] == 0x78 && (uint16(head[0])<<8|uint16(head[1]))%31 == 0:
		return Zlib
	}
	return None
}

// NewReader wraps r with a decompressor for enc. Closing the result does
// not close r.
func NewReader(r io.Reader, enc Encoding) (io.ReadCloser, error) {
	switch enc {
	case None:
		return io.NopCloser(r), nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		return zr, nil
	case Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return gr, nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Zstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %v", enc)
	}
}

// ReadAll decompresses src into dst. A positive limit caps the
// decompressed size; exceeding it returns buffer.ErrTooLarge.
func ReadAll(dst *buffer.Resizable[byte], src io.Reader, enc Encoding, limit int64) (int64, error) {
	r, err := NewReader(src, enc)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n, err := buffer.ReadAll(dst, r, limit)
	if err != nil {
		return n, fmt.Errorf("%v decompress: %w", enc, err)
	}
	return n, nil
}
