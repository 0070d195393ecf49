// Package reservation implements the crossbar reservation table a router's
// txProcess uses to hold an output port for the worm that opened it: a HEAD
// flit reserves its chosen output direction, BODY flits ride the reservation
// via a short-circuit map, and a TAIL flit releases it. This is a direct
// translation of TRouter.cpp's reservation_table/short_circuit pair.
package reservation

import "github.com/sarchlab/noxim/mesh"

// notReserved is the sentinel value for an output direction nobody currently
// owns, matching CHANNEL_NOT_RESERVED in the reference router.
const notReserved = -1

// invalid marks an output direction that does not exist at this router's
// position in the mesh (a boundary tile has no neighbour in that direction).
// Reserving or short-circuiting through it is a routing-function bug, so any
// attempt panics rather than silently misrouting.
const invalid = -2

// Table tracks, for each of a router's mesh.NumPorts output directions,
// which input direction currently owns the worm occupying it, and for each
// input direction, which output direction its in-flight worm short-circuits
// to.
type Table struct {
	reservedBy    [mesh.NumPorts]int // output direction -> owning input direction, or notReserved
	shortCircuit  [mesh.NumPorts]int // input direction -> reserved output direction
	outputInvalid [mesh.NumPorts]bool
}

// New returns a table with every output direction free. Call
// InvalidateOutput for any direction that has no live neighbour at this
// router's position (mesh edges), so that a routing bug reserving it panics
// immediately instead of corrupting a non-existent link.
func New() *Table {
	t := &Table{}
	for i := range t.reservedBy {
		t.reservedBy[i] = notReserved
		t.shortCircuit[i] = notReserved
	}
	return t
}

// InvalidateOutput marks dir as unreachable from this router, e.g. North at
// the top row of the mesh. Mirrors NoC.cpp tying off boundary reservation
// entries at mesh construction time.
func (t *Table) InvalidateOutput(dir mesh.Direction) {
	t.outputInvalid[dir] = true
}

func (t *Table) checkValid(dir mesh.Direction) {
	if t.outputInvalid[dir] {
		panic("reservation: output direction is invalid at this router's position")
	}
}

// IsFree reports whether no worm currently owns dir.
func (t *Table) IsFree(dir mesh.Direction) bool {
	t.checkValid(dir)
	return t.reservedBy[dir] == notReserved
}

// OwnedBy reports whether dir is currently reserved by the worm that entered
// on in.
func (t *Table) OwnedBy(dir mesh.Direction, in mesh.Direction) bool {
	t.checkValid(dir)
	return t.reservedBy[dir] == int(in)
}

// Reserve grants out to the worm entering on in, and records the
// short-circuit so BODY/TAIL flits following on in know where to go without
// re-running the routing function. Panics if out is already reserved by a
// different input, which would indicate the caller skipped the IsFree check.
func (t *Table) Reserve(in mesh.Direction, out mesh.Direction) {
	t.checkValid(out)
	if t.reservedBy[out] != notReserved && t.reservedBy[out] != int(in) {
		panic("reservation: Reserve on an output already held by another worm")
	}
	t.reservedBy[out] = int(in)
	t.shortCircuit[in] = int(out)
}

// ShortCircuit returns the output direction a BODY or TAIL flit entering on
// in should use, as set by the HEAD flit that opened the worm. Panics if in
// has no open short-circuit, which would mean a BODY/TAIL arrived without a
// preceding HEAD.
func (t *Table) ShortCircuit(in mesh.Direction) mesh.Direction {
	out := t.shortCircuit[in]
	if out == notReserved {
		panic("reservation: ShortCircuit queried for an input with no open worm")
	}
	return mesh.Direction(out)
}

// Release frees the output direction a worm entering on in was using, once
// its TAIL flit has been forwarded.
func (t *Table) Release(in mesh.Direction) {
	out := t.shortCircuit[in]
	if out == notReserved {
		panic("reservation: Release on an input with no open worm")
	}
	t.reservedBy[out] = notReserved
	t.shortCircuit[in] = notReserved
}

// Reset clears every reservation, as the reference router's rxProcess does
// on a reset pulse.
func (t *Table) Reset() {
	for i := range t.reservedBy {
		t.reservedBy[i] = notReserved
		t.shortCircuit[i] = notReserved
	}
}
