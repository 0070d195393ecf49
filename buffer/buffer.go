// Package buffer implements the per-direction flit queue every router port
// owns: a fixed-capacity FIFO that models the wormhole-switched input
// queues of the reference router. It wraps an akita/v4/sim.Buffer so
// the queue is built on the same primitive the rest of the simulation's
// scheduling substrate uses, instead of a hand-rolled ring buffer.
package buffer

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/noxim/flit"
)

// Buffer is a fixed-capacity FIFO of flits.
type Buffer struct {
	inner sim.Buffer
}

// New creates an empty buffer with room for capacity flits.
func New(name string, capacity int) *Buffer {
	return &Buffer{inner: sim.NewBuffer(name, capacity)}
}

// IsFull reports whether the buffer has no room for another flit.
func (b *Buffer) IsFull() bool {
	return !b.inner.CanPush()
}

// IsEmpty reports whether the buffer holds no flits.
func (b *Buffer) IsEmpty() bool {
	return b.inner.Size() == 0
}

// Size returns the number of flits currently queued.
func (b *Buffer) Size() int {
	return b.inner.Size()
}

// Capacity returns the maximum number of flits the buffer can hold.
func (b *Buffer) Capacity() int {
	return b.inner.Capacity()
}

// Push enqueues f. Panics if the buffer is full; callers must check
// IsFull first, matching the reference simulator's precondition that flow
// control never lets a full buffer be written.
func (b *Buffer) Push(f flit.Flit) {
	if b.IsFull() {
		panic("buffer: Push on a full buffer")
	}
	b.inner.Push(f)
}

// Front returns the flit at the head of the queue without removing it.
// Panics if the buffer is empty.
func (b *Buffer) Front() flit.Flit {
	item := b.inner.Peek()
	if item == nil {
		panic("buffer: Front on an empty buffer")
	}
	return item.(flit.Flit)
}

// Pop removes and returns the flit at the head of the queue. Panics if the
// buffer is empty.
func (b *Buffer) Pop() flit.Flit {
	item := b.inner.Pop()
	if item == nil {
		panic("buffer: Pop on an empty buffer")
	}
	return item.(flit.Flit)
}
