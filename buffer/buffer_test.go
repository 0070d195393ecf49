package buffer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/buffer"
	"github.com/sarchlab/noxim/flit"
)

var _ = Describe("Buffer", func() {
	var b *buffer.Buffer

	BeforeEach(func() {
		b = buffer.New("test", 2)
	})

	It("starts empty", func() {
		Expect(b.IsEmpty()).To(BeTrue())
		Expect(b.IsFull()).To(BeFalse())
		Expect(b.Size()).To(Equal(0))
		Expect(b.Capacity()).To(Equal(2))
	})

	It("fills up after Capacity pushes", func() {
		b.Push(flit.Flit{SequenceNumber: 1})
		b.Push(flit.Flit{SequenceNumber: 2})
		Expect(b.IsFull()).To(BeTrue())
	})

	It("panics pushing onto a full buffer", func() {
		b.Push(flit.Flit{})
		b.Push(flit.Flit{})
		Expect(func() { b.Push(flit.Flit{}) }).To(Panic())
	})

	It("pops in FIFO order", func() {
		b.Push(flit.Flit{SequenceNumber: 1})
		b.Push(flit.Flit{SequenceNumber: 2})
		Expect(b.Pop().SequenceNumber).To(Equal(1))
		Expect(b.Pop().SequenceNumber).To(Equal(2))
	})

	It("panics popping an empty buffer", func() {
		Expect(func() { b.Pop() }).To(Panic())
	})

	It("panics peeking Front on an empty buffer", func() {
		Expect(func() { b.Front() }).To(Panic())
	})

	It("leaves the head in place when Front is called", func() {
		b.Push(flit.Flit{SequenceNumber: 5})
		Expect(b.Front().SequenceNumber).To(Equal(5))
		Expect(b.Front().SequenceNumber).To(Equal(5))
		Expect(b.Size()).To(Equal(1))
	})
})
