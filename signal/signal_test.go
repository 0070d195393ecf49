package signal_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/signal"
)

var _ = Describe("Reg", func() {
	It("reads the initial value before any write", func() {
		r := signal.NewReg(7)
		Expect(r.Read()).To(Equal(7))
	})

	It("does not observe a write until Commit runs", func() {
		r := signal.NewReg(0)
		r.Write(9)
		Expect(r.Read()).To(Equal(0))
		r.Commit()
		Expect(r.Read()).To(Equal(9))
	})

	It("leaves the value unchanged if Commit runs with nothing staged", func() {
		r := signal.NewReg(3)
		r.Commit()
		Expect(r.Read()).To(Equal(3))
	})

	It("clears the staged write after Commit", func() {
		r := signal.NewReg(0)
		r.Write(1)
		r.Commit()
		r.Commit()
		Expect(r.Read()).To(Equal(1))
	})
})
