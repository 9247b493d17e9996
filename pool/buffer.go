/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package pool

import (
	"bytes"
	"sync"
)

// buffers grown over this capacity are not recycled
const maxRecycledCap = 64 * 1024

// BufferPool represents a pool of reusable byte buffers.
// It is used to serialize storage entities and outgoing elements.
type BufferPool struct {
	p sync.Pool
}

// NewBufferPool returns a new buffer pool instance.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		p: sync.Pool{New: func() interface{} { return new(bytes.Buffer) }},
	}
}

// Get returns an empty buffer from the pool.
func (bp *BufferPool) Get() *bytes.Buffer {
	return bp.p.Get().(*bytes.Buffer)
}

// Put resets buf and gives it back to the pool.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	buf.Reset()
	if buf.Cap() > maxRecycledCap {
		return
	}
	bp.p.Put(buf)
}
