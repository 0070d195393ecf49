package api_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/noxim/api"
	"github.com/sarchlab/noxim/config"
	"github.com/sarchlab/noxim/noc"
	"github.com/sarchlab/noxim/pe"
	"github.com/sarchlab/noxim/stats"
)

var _ = Describe("Driver", func() {
	It("runs the mesh for exactly totalCycles and then stops", func() {
		cfg, err := config.NewBuilder().WithMeshDim(2, 2).Build()
		Expect(err).NotTo(HaveOccurred())

		sink := stats.New(0)
		mesh, err2 := noc.Build(cfg, noc.Options{
			RouterStats:   sink,
			PEStats:       sink,
			Distribution:  pe.RandomUniform,
			InjectionRate: 1.0,
			MinPacketSize: 2,
			MaxPacketSize: 2,
		})
		Expect(err2).NotTo(HaveOccurred())

		engine := sim.NewSerialEngine()
		driver := api.NewDriverBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithTotalCycles(50).
			Build("Driver", mesh)

		driver.Run(engine)

		Expect(driver.Cycle()).To(Equal(int64(50)))
		Expect(sink.Delivered()).To(BeNumerically(">", 0))
	})
})
