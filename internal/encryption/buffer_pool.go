package encryption

import (
	"sync"
)

// chunkPool provides reusable DefaultChunkSize buffers for streaming.
//
//nolint:gochecknoglobals
var chunkPool = sync.Pool{
	New: func() any {
		buf := make([]byte, DefaultChunkSize)

		return &buf
	},
}

// getChunk returns a buffer of exactly size bytes and a function that releases it.
// Only default-sized buffers are pooled; other sizes are allocated per call.
// Pooled buffers are zeroed on release.
func getChunk(size int) ([]byte, func()) {
	if size != DefaultChunkSize {
		return make([]byte, size), func() {}
	}

	bufp, ok := chunkPool.Get().(*[]byte)
	if !ok {
		return make([]byte, size), func() {}
	}

	return *bufp, func() {
		clear(*bufp)
		chunkPool.Put(bufp)
	}
}
