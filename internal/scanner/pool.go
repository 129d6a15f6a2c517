package scanner

import "sync"

// maxScratch bounds the escape-decoding buffers kept for reuse.
const maxScratch = 64 * 1024

var scratchPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 256)
		return &b
	},
}

// GetScratch returns an empty buffer for ReadString's escape path.
func GetScratch() *[]byte {
	return scratchPool.Get().(*[]byte)
}

// PutScratch hands a buffer back. Very large buffers are not pooled.
func PutScratch(b *[]byte) {
	if cap(*b) > maxScratch {
		return
	}
	*b = (*b)[:0]
	scratchPool.Put(b)
}
