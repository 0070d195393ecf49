package router_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/flit"
	"github.com/sarchlab/noxim/mesh"
	"github.com/sarchlab/noxim/router"
	"github.com/sarchlab/noxim/routing"
	"github.com/sarchlab/noxim/selection"
)

// fakePE plays the role of a tile's processing element against one Link,
// exercising exactly the same alternating-bit discipline a Router does on
// its own ports, so these tests drive a Router the way the rest of the
// mesh actually would.
type fakePE struct {
	out      *router.Link // PE -> router
	in       *router.Link // router -> PE
	txLevel  int
	rxLevel  int
	pending  []flit.Flit
	received []flit.Flit
}

func (p *fakePE) evaluate() {
	if len(p.pending) > 0 && p.txLevel == p.out.Ack.Read() {
		p.out.Flit.Write(p.pending[0])
		p.pending = p.pending[1:]
		p.txLevel = 1 - p.txLevel
		p.out.Req.Write(p.txLevel)
	}

	if p.in.Req.Read() == 1-p.rxLevel {
		p.received = append(p.received, p.in.Flit.Read())
		p.rxLevel = 1 - p.rxLevel
		p.in.Ack.Write(p.rxLevel)
	}
}

func (p *fakePE) commit() {
	p.out.Req.Commit()
	p.out.Flit.Commit()
	p.in.Ack.Commit()
}

var _ = Describe("Router", func() {
	var (
		a, b *router.Router
		peA  *fakePE
		now  int64
	)

	BeforeEach(func() {
		now = 0
		a = router.NewBuilder().
			WithWidth(2).
			WithDepth(4).
			WithAlgorithm(routing.XY).
			WithSelection(selection.Random).
			Build(0, mesh.Coordinate{X: 0, Y: 0})
		b = router.NewBuilder().
			WithWidth(2).
			WithDepth(4).
			WithAlgorithm(routing.XY).
			WithSelection(selection.Random).
			Build(1, mesh.Coordinate{X: 1, Y: 0})

		linkAB := router.NewLink()
		a.SetOut(mesh.East, linkAB)
		b.SetIn(mesh.West, linkAB)

		linkBA := router.NewLink()
		b.SetOut(mesh.West, linkBA)
		a.SetIn(mesh.East, linkBA)

		aLocalIn := router.NewLink()
		a.SetIn(mesh.Local, aLocalIn)

		bLocalOut := router.NewLink()
		b.SetOut(mesh.Local, bLocalOut)

		peA = &fakePE{out: aLocalIn, in: bLocalOut}
	})

	step := func() {
		peA.evaluate()
		a.Evaluate(now)
		b.Evaluate(now)
		peA.commit()
		a.Commit()
		b.Commit()
		now++
	}

	It("delivers a two-flit packet across one hop within a bounded number of cycles", func() {
		peA.pending = flit.BuildPacket(0, 1, 42, 2, 0)

		delivered := false
		for i := 0; i < 20 && !delivered; i++ {
			step()
			delivered = len(peA.received) == 2
		}

		Expect(peA.received).To(HaveLen(2))
		Expect(peA.received[0].FlitType).To(Equal(flit.Head))
		Expect(peA.received[1].FlitType).To(Equal(flit.Tail))
		Expect(peA.received[0].SequenceNumber).To(Equal(42))
	})

	It("reports growing buffer occupancy while a HEAD flit waits on a busy reservation", func() {
		// A HEAD flit enters on North, destined east like everything peA
		// sends, and reserves a's East output the first cycle it
		// evaluates. With no TAIL ever following it on North, that
		// reservation is never released even once b has accepted the
		// flit, so the Local packet peA now sends competes for the same
		// output and can never win it.
		northLink := router.NewLink()
		a.SetIn(mesh.North, northLink)

		northHead := flit.Flit{SrcID: 2, DstID: 1, SequenceNumber: 7, FlitType: flit.Head}
		northLink.Req.Write(1)
		northLink.Flit.Write(northHead)
		northLink.Req.Commit()
		northLink.Flit.Commit()

		a.Evaluate(now)
		a.Commit()
		now++

		peA.pending = flit.BuildPacket(0, 1, 1, 4, now)

		Expect(a.BufferSize(mesh.Local)).To(Equal(0))

		for i := 0; i < 3; i++ {
			step()
		}

		Expect(a.BufferSize(mesh.Local)).To(BeNumerically(">", 0))
	})
})
