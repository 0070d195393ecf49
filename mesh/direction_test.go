package mesh_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/mesh"
)

var _ = Describe("Direction", func() {
	It("names every cardinal direction and Local", func() {
		Expect(mesh.North.Name()).To(Equal("North"))
		Expect(mesh.East.Name()).To(Equal("East"))
		Expect(mesh.South.Name()).To(Equal("South"))
		Expect(mesh.West.Name()).To(Equal("West"))
		Expect(mesh.Local.Name()).To(Equal("Local"))
	})

	DescribeTable("Opposite is involutive for cardinal directions",
		func(d mesh.Direction) {
			Expect(d.Opposite().Opposite()).To(Equal(d))
		},
		Entry("North", mesh.North),
		Entry("East", mesh.East),
		Entry("South", mesh.South),
		Entry("West", mesh.West),
	)

	It("panics computing the opposite of Local", func() {
		Expect(func() { mesh.Local.Opposite() }).To(Panic())
	})

	It("parses a direction's name back into the same value", func() {
		d, err := mesh.ParseDirection("East")
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(Equal(mesh.East))
	})

	It("errors on an unknown direction name", func() {
		_, err := mesh.ParseDirection("Northeast")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Coordinate", func() {
	It("round-trips through ID and IDToCoordinate", func() {
		width := 4
		for y := 0; y < 3; y++ {
			for x := 0; x < width; x++ {
				c := mesh.Coordinate{X: x, Y: y}
				id := c.ID(width)
				Expect(mesh.IDToCoordinate(id, width)).To(Equal(c))
			}
		}
	})

	It("computes row-major ids", func() {
		c := mesh.Coordinate{X: 2, Y: 1}
		Expect(c.ID(4)).To(Equal(6))
	})
})
