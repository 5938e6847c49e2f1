// Package ring implements the lock-free single-producer single-consumer
// byte ring the renderer writes 8-bit samples into. The producer only
// writes into space it has seen as writable and the consumer only reads
// what has been produced, so plain atomic loads and stores on the two
// indices are the whole synchronization story.
package ring

import "sync/atomic"

// Buffer is an SPSC ring of 8-bit samples. One goroutine may call the
// producer methods (Writable, Overwrite) and one may call the consumer
// methods (Readable, Read); the two sides need no further coordination.
type Buffer struct {
	data []byte
	mask uint32
	head atomic.Uint32 // consumer index
	tail atomic.Uint32 // producer index
}

// New creates a Buffer holding at least size samples. The allocation is
// rounded up to a power of two; usable capacity is the rounded size minus
// one slot.
func New(size int) *Buffer {
	n := uint32(2)
	for int(n) <= size {
		n <<= 1
	}
	return &Buffer{data: make([]byte, n), mask: n - 1}
}

// Cap returns the usable capacity in samples.
func (b *Buffer) Cap() int {
	return len(b.data) - 1
}

// Writable returns how many samples the producer may append right now.
func (b *Buffer) Writable() int {
	used := b.tail.Load() - b.head.Load()
	return int(b.mask - used) // one slot kept free to tell full from empty
}

// Overwrite appends one sample. If the buffer is full the sample is
// dropped; the renderer checks Writable before producing, so a drop only
// happens if the producer breaks that discipline.
func (b *Buffer) Overwrite(s byte) {
	tail := b.tail.Load()
	if tail-b.head.Load() > b.mask-1 {
		return
	}
	b.data[tail&b.mask] = s
	b.tail.Store(tail + 1)
}

// Readable returns how many samples the consumer may read right now.
func (b *Buffer) Readable() int {
	return int(b.tail.Load() - b.head.Load())
}

// Read copies up to len(p) samples into p and returns how many it copied.
func (b *Buffer) Read(p []byte) int {
	head := b.head.Load()
	avail := b.tail.Load() - head
	n := uint32(len(p))
	if n > avail {
		n = avail
	}
	for i := uint32(0); i < n; i++ {
		p[i] = b.data[(head+i)&b.mask]
	}
	b.head.Store(head + n)
	return int(n)
}
