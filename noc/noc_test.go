package noc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/config"
	"github.com/sarchlab/noxim/mesh"
	"github.com/sarchlab/noxim/noc"
	"github.com/sarchlab/noxim/pe"
	"github.com/sarchlab/noxim/stats"
)

var _ = Describe("Mesh", func() {
	It("lays out W*H tiles addressable by row-major id", func() {
		cfg, err := config.NewBuilder().WithMeshDim(3, 2).Build()
		Expect(err).NotTo(HaveOccurred())

		m, err := noc.Build(cfg, noc.Options{MinPacketSize: 2, MaxPacketSize: 2})
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Tiles()).To(HaveLen(6))
		for id, t := range m.Tiles() {
			Expect(t.Router.ID()).To(Equal(id))
			Expect(t.Router.Position()).To(Equal(mesh.IDToCoordinate(id, 3)))
		}
		Expect(m.Tile(6)).To(BeNil())
		Expect(m.Tile(-1)).To(BeNil())
	})

	It("delivers flits end to end once neighbours are wired", func() {
		cfg, err := config.NewBuilder().WithMeshDim(2, 2).Build()
		Expect(err).NotTo(HaveOccurred())

		sink := stats.New(0)
		m, err2 := noc.Build(cfg, noc.Options{
			RouterStats:   sink,
			PEStats:       sink,
			Distribution:  pe.RandomUniform,
			InjectionRate: 1.0,
			MinPacketSize: 2,
			MaxPacketSize: 2,
		})
		Expect(err2).NotTo(HaveOccurred())

		var now int64
		for i := 0; i < 40; i++ {
			m.Evaluate(now)
			m.Commit()
			now++
		}

		Expect(sink.Injected()).To(BeNumerically(">", 0))
		Expect(sink.Delivered()).To(BeNumerically(">", 0))
	})
})
