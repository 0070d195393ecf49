package flit_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/flit"
)

var _ = Describe("BuildPacket", func() {
	It("panics when asked for a packet smaller than MinPacketSize", func() {
		Expect(func() { flit.BuildPacket(0, 1, 0, 1, 0) }).To(Panic())
	})

	It("builds a minimal HEAD/TAIL packet", func() {
		flits := flit.BuildPacket(0, 3, 5, 2, 100)
		Expect(flits).To(HaveLen(2))
		Expect(flits[0].FlitType).To(Equal(flit.Head))
		Expect(flits[1].FlitType).To(Equal(flit.Tail))
		for _, f := range flits {
			Expect(f.SrcID).To(Equal(0))
			Expect(f.DstID).To(Equal(3))
			Expect(f.SequenceNumber).To(Equal(5))
			Expect(f.Timestamp).To(Equal(int64(100)))
		}
	})

	It("fills every interior flit as BODY", func() {
		flits := flit.BuildPacket(1, 2, 0, 5, 0)
		Expect(flits[0].FlitType).To(Equal(flit.Head))
		Expect(flits[1].FlitType).To(Equal(flit.Body))
		Expect(flits[2].FlitType).To(Equal(flit.Body))
		Expect(flits[3].FlitType).To(Equal(flit.Body))
		Expect(flits[4].FlitType).To(Equal(flit.Tail))
	})
})
