// Package routing implements the routing-function half of a router's
// forwarding decision: given a flit's current position, source, and
// destination, compute the non-empty, ordered set of admissible output
// directions. Selection among that set, when it has more than one member,
// is a separate concern (package selection). Every algorithm here is a
// direct translation of the corresponding routingXxx method in the
// reference TRouter.cpp.
package routing

import "github.com/sarchlab/noxim/mesh"

// Algorithm names a routing function. The zero value is XY.
type Algorithm int

const (
	XY Algorithm = iota
	WestFirst
	NorthLast
	NegativeFirst
	OddEven
	FullyAdaptive
	TableBased
	DyAD
	LookAhead
	NoPCAR
)

func (a Algorithm) String() string {
	switch a {
	case XY:
		return "XY"
	case WestFirst:
		return "WestFirst"
	case NorthLast:
		return "NorthLast"
	case NegativeFirst:
		return "NegativeFirst"
	case OddEven:
		return "OddEven"
	case FullyAdaptive:
		return "FullyAdaptive"
	case TableBased:
		return "TableBased"
	case DyAD:
		return "DyAD"
	case LookAhead:
		return "LookAhead"
	case NoPCAR:
		return "NoPCAR"
	default:
		return "Unknown"
	}
}

// Table is the subset of rtable.Table a routing function needs: a lookup
// from (incoming direction, destination node id) to an admissible output
// set. Declared here, rather than importing package rtable directly, so
// that routing has no dependency on the table's file-loading concerns.
type Table interface {
	AdmissibleOutputs(inDir mesh.Direction, dstID int) []mesh.Direction
}

// Route computes the admissible output directions for a flit currently at
// position, having entered on inDir, travelling from src to dst, in a mesh
// of the given width. table is only consulted by TableBased and may be nil
// for every other algorithm. The returned slice always has at least one
// element unless dst is this router (in which case Local is returned
// alone) and is never nil.
//
// Route panics for DyAD, LookAhead, and NoPCAR: the reference simulator
// asserts false in all three (they were never completed upstream), so
// there is no behaviour to preserve.
func Route(alg Algorithm, width int, position, src, dst mesh.Coordinate, inDir mesh.Direction, table Table) []mesh.Direction {
	if dst == position {
		return []mesh.Direction{mesh.Local}
	}

	switch alg {
	case XY:
		return routeXY(position, dst)
	case WestFirst:
		return routeWestFirst(position, dst)
	case NorthLast:
		return routeNorthLast(position, dst)
	case NegativeFirst:
		return routeNegativeFirst(position, dst)
	case OddEven:
		out := routeOddEven(position, src, dst)
		if len(out) == 0 || len(out) > 2 {
			panic("routing: odd-even produced an invalid admissible set")
		}
		return out
	case FullyAdaptive:
		return routeFullyAdaptive(position, dst)
	case TableBased:
		dstID := dst.ID(width)
		out := table.AdmissibleOutputs(inDir, dstID)
		if len(out) == 0 {
			panic("routing: table-based lookup returned no admissible outputs")
		}
		return out
	case DyAD:
		panic("routing: DyAD is not implemented")
	case LookAhead:
		panic("routing: LookAhead is not implemented")
	case NoPCAR:
		panic("routing: NoPCAR is not implemented")
	default:
		panic("routing: unknown algorithm")
	}
}

func routeXY(current, destination mesh.Coordinate) []mesh.Direction {
	switch {
	case destination.X > current.X:
		return []mesh.Direction{mesh.East}
	case destination.X < current.X:
		return []mesh.Direction{mesh.West}
	case destination.Y > current.Y:
		return []mesh.Direction{mesh.South}
	default:
		return []mesh.Direction{mesh.North}
	}
}

func routeWestFirst(current, destination mesh.Coordinate) []mesh.Direction {
	if destination.X <= current.X || destination.Y == current.Y {
		return routeXY(current, destination)
	}
	if destination.Y < current.Y {
		return []mesh.Direction{mesh.North, mesh.East}
	}
	return []mesh.Direction{mesh.South, mesh.East}
}

func routeNorthLast(current, destination mesh.Coordinate) []mesh.Direction {
	if destination.X == current.X || destination.Y <= current.Y {
		return routeXY(current, destination)
	}
	if destination.X < current.X {
		return []mesh.Direction{mesh.South, mesh.West}
	}
	return []mesh.Direction{mesh.South, mesh.East}
}

func routeNegativeFirst(current, destination mesh.Coordinate) []mesh.Direction {
	if (destination.X <= current.X && destination.Y <= current.Y) ||
		(destination.X >= current.X && destination.Y >= current.Y) {
		return routeXY(current, destination)
	}
	if destination.X > current.X && destination.Y < current.Y {
		return []mesh.Direction{mesh.North, mesh.East}
	}
	return []mesh.Direction{mesh.South, mesh.West}
}

func routeOddEven(current, source, destination mesh.Coordinate) []mesh.Direction {
	c0, c1 := current.X, current.Y
	s0 := source.X
	d0, d1 := destination.X, destination.Y
	e0 := d0 - c0
	e1 := -(d1 - c1)

	var directions []mesh.Direction

	if e0 == 0 {
		if e1 > 0 {
			directions = append(directions, mesh.North)
		} else {
			directions = append(directions, mesh.South)
		}
		return directions
	}

	if e0 > 0 {
		if e1 == 0 {
			directions = append(directions, mesh.East)
			return directions
		}
		if c0%2 == 1 || c0 == s0 {
			if e1 > 0 {
				directions = append(directions, mesh.North)
			} else {
				directions = append(directions, mesh.South)
			}
		}
		if d0%2 == 1 || e0 != 1 {
			directions = append(directions, mesh.East)
		}
		return directions
	}

	directions = append(directions, mesh.West)
	if c0%2 == 0 {
		if e1 > 0 {
			directions = append(directions, mesh.North)
		} else {
			directions = append(directions, mesh.South)
		}
	}
	return directions
}

func routeFullyAdaptive(current, destination mesh.Coordinate) []mesh.Direction {
	if destination.X == current.X || destination.Y == current.Y {
		return routeXY(current, destination)
	}
	switch {
	case destination.X > current.X && destination.Y < current.Y:
		return []mesh.Direction{mesh.North, mesh.East}
	case destination.X > current.X && destination.Y > current.Y:
		return []mesh.Direction{mesh.South, mesh.East}
	case destination.X < current.X && destination.Y > current.Y:
		return []mesh.Direction{mesh.South, mesh.West}
	default:
		return []mesh.Direction{mesh.North, mesh.West}
	}
}
