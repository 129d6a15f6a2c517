package buffer

import (
	"errors"
	"io"
)

// ErrTooLarge is returned by ReadAll when the source exceeds its limit.
var ErrTooLarge = errors.New("buffer: input exceeds size limit")

// readChunk is the minimum segment reserved per read call.
const readChunk = 4096

// ReadAll appends everything from src to dst, reading straight into
// reserved segments of dst. A positive limit caps the number of bytes
// accepted; exceeding it returns ErrTooLarge with dst holding the bytes read
// so far.
func ReadAll(dst *Resizable[byte], src io.Reader, limit int64) (int64, error) {
	var total int64
	for {
		seg := dst.ReserveSegment(readChunk)
		if limit > 0 && int64(len(seg)) > limit-total+1 {
			seg = seg[:limit-total+1]
		}
		n, err := src.Read(seg)
		if n > 0 {
			total += int64(n)
			if limit > 0 && total > limit {
				dst.Advance(n - int(total-limit))
				return limit, ErrTooLarge
			}
			dst.Advance(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
