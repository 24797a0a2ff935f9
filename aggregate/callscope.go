package aggregate

import "github.com/arloliu/aggcore/internal/pool"

// CallScope is the Go analogue of the host memory context a PostgreSQL
// aggregate's transition function runs in: a short-lived scratch area for
// the byte buffers Serialize/Deserialize need, reused across the many
// transition calls in one statement and reset (not freed) between them.
//
// Unlike the host's memory context, CallScope does not own the aggregate
// state itself, only its own scratch buffers; Go's garbage collector owns
// state lifetime.
type CallScope struct {
	scratch *pool.ByteBuffer
}

// NewCallScope returns a CallScope backed by a scratch buffer of the given
// initial size.
func NewCallScope(initialSize int) *CallScope {
	return &CallScope{scratch: pool.NewByteBuffer(initialSize)}
}

// Scratch returns the scope's reusable byte buffer, reset to empty.
func (c *CallScope) Scratch() *pool.ByteBuffer {
	c.scratch.Reset()
	return c.scratch
}

// Reset clears the scope's scratch buffer for reuse by the next call
// without releasing its backing array.
func (c *CallScope) Reset() {
	c.scratch.Reset()
}

// Handle is an opaque, nil-able reference to an aggregate's in-progress
// state, held by the host across transition calls. A nil Handle means no
// transition has run yet.
type Handle = any
