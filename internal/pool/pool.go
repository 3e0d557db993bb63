// Package pool provides zero-allocation buffer and Document reuse for
// the router's ingestion hot path.
package pool

import (
	"sync"

	"github.com/flowgate/flowgate/internal/model"
)

// DefaultBufferSize is the default size for byte buffers.
const DefaultBufferSize = 64 * 1024

// ByteBuffer wraps a byte slice for pooled reuse.
type ByteBuffer struct {
	Data []byte
}

// Reset clears the buffer for reuse.
func (b *ByteBuffer) Reset() {
	b.Data = b.Data[:0]
}

// Grow ensures the buffer has at least n bytes of capacity.
func (b *ByteBuffer) Grow(n int) {
	if cap(b.Data) < n {
		b.Data = make([]byte, 0, n)
	}
}

// Write appends data to the buffer, implementing io.Writer.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	b.Data = append(b.Data, p...)
	return len(p), nil
}

// Len returns the current length of data in the buffer.
func (b *ByteBuffer) Len() int {
	return len(b.Data)
}

// Bytes returns the underlying byte slice.
func (b *ByteBuffer) Bytes() []byte {
	return b.Data
}

// BufferPool manages reusable byte buffers, e.g. for route-table
// snapshot encoding.
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool creates a buffer pool whose buffers start at bufferSize.
func NewBufferPool(bufferSize int) *BufferPool {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	bp := &BufferPool{}
	bp.pool.New = func() any {
		return &ByteBuffer{Data: make([]byte, 0, bufferSize)}
	}
	return bp
}

// Get retrieves a buffer from the pool.
func (p *BufferPool) Get() *ByteBuffer {
	return p.pool.Get().(*ByteBuffer)
}

// Put resets buf and returns it to the pool.
func (p *BufferPool) Put(buf *ByteBuffer) {
	buf.Reset()
	p.pool.Put(buf)
}

// DocumentPool manages reusable *model.Document values for the
// router's intake path: a caller that parses a raw event with
// ParseInto instead of Parse avoids one allocation per event. The
// router returns a Document to the pool only when no route matched it;
// a forwarded Document belongs to the environment manager, per
// interfaces.EnvironmentManager's ForwardEvent contract.
type DocumentPool struct {
	pool sync.Pool
}

// NewDocumentPool creates an empty Document pool.
func NewDocumentPool() *DocumentPool {
	dp := &DocumentPool{}
	dp.pool.New = func() any { return model.New() }
	return dp
}

// Get retrieves a Document from the pool, or allocates one if empty.
func (p *DocumentPool) Get() *model.Document {
	return p.pool.Get().(*model.Document)
}

// Put resets doc and returns it to the pool. Callers must not retain
// doc, or any value obtained from it, after calling Put.
func (p *DocumentPool) Put(doc *model.Document) {
	doc.Reset()
	p.pool.Put(doc)
}
