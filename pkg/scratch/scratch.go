// Package scratch contains scratch buffers whose lifetime is limited to a single operation.
package scratch

import (
	"sync"
)

const (
	// buffers are allocated with this capacity at least.
	minCapacity = 1500

	// buffers bigger than this are not reused.
	maxReusedCapacity = 64 * 1024
)

var pool = sync.Pool{
	New: func() interface{} {
		return &Buffer{
			buf: make([]byte, 0, minCapacity),
		}
	},
}

// Buffer is a scratch buffer.
// It is acquired with Get and must be released with Release,
// usually with defer, on every exit path.
// After Release, the buffer content must not be used anymore.
type Buffer struct {
	buf      []byte
	released bool
}

// Get acquires a buffer with the given length.
// Existing buffers are reused when possible, improving performance.
func Get(size int) *Buffer {
	b := pool.Get().(*Buffer)
	b.released = false

	if cap(b.buf) < size {
		b.buf = make([]byte, size)
	} else {
		b.buf = b.buf[:size]
	}

	return b
}

// Bytes returns the content of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the length of the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Release releases the buffer.
// Content is zeroed before the buffer is reused.
// Calling Release more than once has no effect.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true

	clear(b.buf[:cap(b.buf)])

	if cap(b.buf) > maxReusedCapacity {
		return
	}

	b.buf = b.buf[:0]
	pool.Put(b)
}
