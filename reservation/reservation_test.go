package reservation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/mesh"
	"github.com/sarchlab/noxim/reservation"
)

var _ = Describe("Table", func() {
	var t *reservation.Table

	BeforeEach(func() {
		t = reservation.New()
	})

	It("starts with every output free", func() {
		Expect(t.IsFree(mesh.East)).To(BeTrue())
	})

	It("grants a reservation to the requesting input", func() {
		t.Reserve(mesh.West, mesh.East)
		Expect(t.IsFree(mesh.East)).To(BeFalse())
		Expect(t.OwnedBy(mesh.East, mesh.West)).To(BeTrue())
		Expect(t.OwnedBy(mesh.East, mesh.North)).To(BeFalse())
	})

	It("remembers the short-circuit for body flits", func() {
		t.Reserve(mesh.West, mesh.East)
		Expect(t.ShortCircuit(mesh.West)).To(Equal(mesh.East))
	})

	It("panics querying a short-circuit for an input with no open worm", func() {
		Expect(func() { t.ShortCircuit(mesh.North) }).To(Panic())
	})

	It("frees the output on Release", func() {
		t.Reserve(mesh.West, mesh.East)
		t.Release(mesh.West)
		Expect(t.IsFree(mesh.East)).To(BeTrue())
	})

	It("panics reserving an output already held by a different input", func() {
		t.Reserve(mesh.West, mesh.East)
		Expect(func() { t.Reserve(mesh.North, mesh.East) }).To(Panic())
	})

	It("allows the same input to re-reserve its own output idempotently", func() {
		t.Reserve(mesh.West, mesh.East)
		Expect(func() { t.Reserve(mesh.West, mesh.East) }).NotTo(Panic())
	})

	It("panics operating on a direction invalidated as a mesh boundary", func() {
		t.InvalidateOutput(mesh.North)
		Expect(func() { t.IsFree(mesh.North) }).To(Panic())
		Expect(func() { t.Reserve(mesh.West, mesh.North) }).To(Panic())
	})

	It("clears every reservation on Reset", func() {
		t.Reserve(mesh.West, mesh.East)
		t.Reset()
		Expect(t.IsFree(mesh.East)).To(BeTrue())
		Expect(func() { t.ShortCircuit(mesh.West) }).To(Panic())
	})
})
