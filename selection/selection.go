// Package selection implements the second half of a router's forwarding
// decision: picking one output direction from the non-empty set a routing
// function admits. Translated from the selectionXxx family in the
// reference TRouter.cpp.
package selection

import (
	"math/rand/v2"

	"github.com/sarchlab/noxim/mesh"
)

// Strategy names a selection function. The zero value is Random.
type Strategy int

const (
	Random Strategy = iota
	BufferLevel
	NoPCAR
)

func (s Strategy) String() string {
	switch s {
	case Random:
		return "Random"
	case BufferLevel:
		return "BufferLevel"
	case NoPCAR:
		return "NoPCAR"
	default:
		return "Unknown"
	}
}

// FreePositions reports, for a direction, how many free slots its neighbour's
// input buffer currently has (as published on the link's buffer-level side
// channel).
// Implemented by the router for the directions it has live neighbours in.
type FreePositions interface {
	FreePositions(dir mesh.Direction) int
}

// Select picks one direction out of directions, which must be non-empty. If
// directions has exactly one member it is returned without consulting
// strategy or rng, mirroring the reference router's short-circuit in
// selectionFunction.
//
// rng is used only by Random; it is an explicit, caller-owned source so
// that a whole simulation run is reproducible from a single seed, never a
// package-level global. free is used only by BufferLevel and may be nil
// otherwise.
//
// Select panics for NoPCAR: the reference simulator asserts false there.
func Select(strategy Strategy, directions []mesh.Direction, rng *rand.Rand, free FreePositions) mesh.Direction {
	if len(directions) == 0 {
		panic("selection: Select called with no admissible directions")
	}
	if len(directions) == 1 {
		return directions[0]
	}

	switch strategy {
	case Random:
		return selectRandom(directions, rng)
	case BufferLevel:
		return selectBufferLevel(directions, free)
	case NoPCAR:
		panic("selection: NoPCAR is not implemented")
	default:
		panic("selection: unknown strategy")
	}
}

func selectRandom(directions []mesh.Direction, rng *rand.Rand) mesh.Direction {
	return directions[rng.IntN(len(directions))]
}

// selectBufferLevel picks the direction whose neighbour reports the most
// free buffer slots, scanning directions in order and keeping the last
// direction that is >= the best seen so far. That tie-break (not > ) is
// intentional and matches the reference implementation's
// selectionBufferLevel verbatim: ties favor the later candidate in the
// admissible set, not the first.
func selectBufferLevel(directions []mesh.Direction, free FreePositions) mesh.Direction {
	chosen := mesh.Direction(-1)
	maxFree := -1
	for _, d := range directions {
		f := free.FreePositions(d)
		if f >= maxFree {
			chosen = d
			maxFree = f
		}
	}
	if chosen < 0 {
		panic("selection: selectBufferLevel failed to choose a direction")
	}
	return chosen
}
