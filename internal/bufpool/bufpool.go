// Package bufpool provides reusable copy buffers for stream transfers.
// Pooling the buffers keeps per-object allocations flat when many transfer
// workers run concurrently.
package bufpool

import (
	"sync"
)

// CopyBufferSize is the size of a pooled copy buffer (64KB).
const CopyBufferSize = 64 * 1024

// Pool manages reusable copy buffers.
type Pool struct {
	buffers *sync.Pool
}

// New creates a new buffer pool.
func New() *Pool {
	return &Pool{
		buffers: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, CopyBufferSize)
				return &buf
			},
		},
	}
}

// Get returns a full-length copy buffer from the pool.
// The caller is responsible for calling Put to return the buffer to the pool.
func (p *Pool) Get() []byte {
	bufPtr := p.buffers.Get().(*[]byte)
	return (*bufPtr)[:CopyBufferSize]
}

// Put returns a buffer to the pool.
// The buffer should not be used after calling Put.
func (p *Pool) Put(buf []byte) {
	if cap(buf) != CopyBufferSize {
		// Foreign buffers are not pooled to keep sizes uniform
		return
	}
	p.buffers.Put(&buf)
}

// Global pool instance for use throughout the module.
var globalPool = New()

// Get returns a copy buffer from the global pool.
func Get() []byte {
	return globalPool.Get()
}

// Put returns a copy buffer to the global pool.
func Put(buf []byte) {
	globalPool.Put(buf)
}
