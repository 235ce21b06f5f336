package buffer

import "sync"

// Pool recycles Buffers of one fixed block size to reduce GC pressure in
// real-time processing loops.
type Pool struct {
	blockSize int
	pool      sync.Pool
}

// NewPool returns a Pool handing out blocks of blockSize samples. A
// non-positive size is treated as 1.
func NewPool(blockSize int) *Pool {
	if blockSize < 1 {
		blockSize = 1
	}
	p := &Pool{blockSize: blockSize}
	p.pool.New = func() any {
		return New(blockSize)
	}
	return p
}

// BlockSize returns the length of every Buffer handed out.
func (p *Pool) BlockSize() int {
	return p.blockSize
}

// Get returns a zeroed Buffer of BlockSize samples.
// Callers must return it via Put when done.
func (p *Pool) Get() *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Zero()
	return b
}

// Put returns a Buffer to the pool. Buffers of a different size are dropped.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil || b.Len() != p.blockSize {
		return
	}
	p.pool.Put(b)
}
