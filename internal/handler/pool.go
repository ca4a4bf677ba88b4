package handler

import (
	"bytes"
	"sync"
)

// Pooled buffers back respondJSON encoding. Catalog responses dominate the
// traffic, so start at 1KiB and never pool anything that grew past 64KiB
// (a full merchant inventory dump should not pin memory forever).
const (
	bufferInitialSize = 1024
	bufferPoolMaxSize = 64 * 1024
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, bufferInitialSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > bufferPoolMaxSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
