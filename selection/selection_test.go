package selection_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/noxim/mesh"
	"github.com/sarchlab/noxim/selection"
)

type stubFree map[mesh.Direction]int

func (s stubFree) FreePositions(d mesh.Direction) int { return s[d] }

var _ = Describe("Select", func() {
	It("returns the only candidate without consulting strategy or rng", func() {
		out := selection.Select(selection.NoPCAR, []mesh.Direction{mesh.East}, nil, nil)
		Expect(out).To(Equal(mesh.East))
	})

	It("panics when given no candidates", func() {
		Expect(func() { selection.Select(selection.Random, nil, nil, nil) }).To(Panic())
	})

	Describe("Random", func() {
		It("always returns one of the admissible directions", func() {
			rng := rand.New(rand.NewPCG(1, 2))
			dirs := []mesh.Direction{mesh.North, mesh.East, mesh.South}
			for i := 0; i < 50; i++ {
				out := selection.Select(selection.Random, dirs, rng, nil)
				Expect(dirs).To(ContainElement(out))
			}
		})

		It("is deterministic for a fixed seed", func() {
			dirs := []mesh.Direction{mesh.North, mesh.East}
			a := selection.Select(selection.Random, dirs, rand.New(rand.NewPCG(7, 7)), nil)
			b := selection.Select(selection.Random, dirs, rand.New(rand.NewPCG(7, 7)), nil)
			Expect(a).To(Equal(b))
		})
	})

	Describe("BufferLevel", func() {
		It("picks the direction with the most free positions", func() {
			free := stubFree{mesh.North: 1, mesh.East: 3, mesh.South: 2}
			dirs := []mesh.Direction{mesh.North, mesh.East, mesh.South}
			out := selection.Select(selection.BufferLevel, dirs, nil, free)
			Expect(out).To(Equal(mesh.East))
		})

		It("breaks ties in favour of the later candidate in scan order", func() {
			free := stubFree{mesh.North: 2, mesh.East: 2}
			dirs := []mesh.Direction{mesh.North, mesh.East}
			out := selection.Select(selection.BufferLevel, dirs, nil, free)
			Expect(out).To(Equal(mesh.East))
		})
	})

	It("panics for NoPCAR selection with more than one candidate", func() {
		dirs := []mesh.Direction{mesh.North, mesh.East}
		Expect(func() { selection.Select(selection.NoPCAR, dirs, nil, nil) }).To(Panic())
	})
})
