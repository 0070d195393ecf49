// Package router implements the wormhole-switched router tile: the
// rxProcess/txProcess/bufferMonitor trio of the reference TRouter.cpp,
// rebuilt around the double-buffered signal.Reg register instead of
// SystemC signals. A Router is a plain value driven once per cycle by a
// mesh driver's Evaluate/Commit pair (see package noc); it is not itself
// an akita TickingComponent, so that the driver can guarantee every
// router evaluates against the same latched cycle before any of them
// commits (see the concurrency model in the design notes).
package router

import (
	"log/slog"
	"math/rand/v2"

	"github.com/sarchlab/noxim/buffer"
	"github.com/sarchlab/noxim/flit"
	"github.com/sarchlab/noxim/mesh"
	"github.com/sarchlab/noxim/reservation"
	"github.com/sarchlab/noxim/routing"
	"github.com/sarchlab/noxim/selection"
)

// StatsSink receives notifications for flits delivered to this router's
// LOCAL port, i.e. flits that have reached their destination tile. Router
// never requires one; a nil sink simply means deliveries aren't recorded.
type StatsSink interface {
	FlitDelivered(now int64, f flit.Flit)

	// ObserveBufferOccupancy reports routerID's current occupancy for one
	// direction's input buffer, called once per direction every cycle from
	// bufferMonitor. The sink is expected to track a high-water mark.
	ObserveBufferOccupancy(routerID, occupancy int)
}

// Router is one tile's wormhole-switched crossbar: a flit buffer and an
// alternating-bit-protocol port for each of mesh.NumPorts directions, a
// routing/selection pair deciding where HEAD flits go, and a reservation
// table holding output ports for the worms that have claimed them.
type Router struct {
	id       int
	position mesh.Coordinate
	width    int
	depth    int

	algorithm routing.Algorithm
	strategy  selection.Strategy
	table     routing.Table
	rng       *rand.Rand
	stats     StatsSink
	verbose   bool

	buffers      [mesh.NumPorts]*buffer.Buffer
	reservations *reservation.Table

	in  [mesh.NumPorts]*Link
	out [mesh.NumPorts]*Link

	currentLevelRx [mesh.NumPorts]int
	currentLevelTx [mesh.NumPorts]int
}

// ID returns the router's node id (y*width + x).
func (r *Router) ID() int { return r.id }

// Position returns the router's coordinate in the mesh.
func (r *Router) Position() mesh.Coordinate { return r.position }

// SetIn wires dir's inbound link: flits arrive on it from a neighbour (or
// from this tile's own PE, for mesh.Local), and this router publishes its
// Ack and buffer Level on it.
func (r *Router) SetIn(dir mesh.Direction, l *Link) { r.in[dir] = l }

// SetOut wires dir's outbound link: this router sends flits on it towards a
// neighbour (or its own PE), and reads that neighbour's Ack and Level.
func (r *Router) SetOut(dir mesh.Direction, l *Link) { r.out[dir] = l }

// InvalidateDirection marks dir as having no live neighbour, e.g. North at
// the top row of the mesh. The routing function must never produce dir as
// an admissible output here; reservation.Table enforces that by panicking
// if it is ever reserved.
func (r *Router) InvalidateDirection(dir mesh.Direction) {
	r.reservations.InvalidateOutput(dir)
}

// FreePositions implements selection.FreePositions: the number of empty
// slots in the neighbour's input buffer reachable via dir, as published on
// Out[dir].Level. An unpublished (boundary) link reports zero free slots,
// so buffer-level selection never prefers an unreachable direction.
func (r *Router) FreePositions(dir mesh.Direction) int {
	level := r.out[dir].Level.Read()
	if level < 0 {
		return 0
	}
	return r.depth - level
}

// BufferSize returns the number of flits currently queued for dir. Exposed
// for statistics and tests; the reference router's buffer_level output.
func (r *Router) BufferSize(dir mesh.Direction) int {
	return r.buffers[dir].Size()
}

// Evaluate runs one cycle's worth of rxProcess, txProcess, and
// bufferMonitor against the registers as latched at the start of the
// cycle. It stages every output it produces; none of it becomes visible
// to other tiles until the driver calls Commit on every router in the
// mesh.
func (r *Router) Evaluate(now int64) {
	r.evaluateRx()
	r.evaluateTx(now)
	r.evaluateBufferMonitor()
}

// Commit publishes every register this router staged a write to this
// cycle, on both its inbound and outbound links.
func (r *Router) Commit() {
	for i := 0; i < mesh.NumPorts; i++ {
		r.in[i].commit()
		r.out[i].commit()
	}
}

// Reset clears this router's alternating-bit state and reservation table
// back to their power-on values: ack_rx and current_level_rx/tx on every
// port, and every open reservation. Mirrors the reset pulse TRouter.cpp's
// rxProcess/txProcess both check for before doing anything else each cycle.
// Takes effect immediately, not at the next Commit, since a reset pulse is
// not part of the normal evaluate/commit handshake.
func (r *Router) Reset() {
	for i := 0; i < mesh.NumPorts; i++ {
		r.currentLevelRx[i] = 0
		r.currentLevelTx[i] = 0
		r.in[i].Ack.Reset(0)
	}
	r.reservations.Reset()
}

// evaluateRx accepts a new flit on any direction whose toggled Req doesn't
// match our last-seen level and whose buffer has room, then republishes
// Ack at the (possibly just-flipped) level. Mirrors TRouter::rxProcess.
func (r *Router) evaluateRx() {
	for i := 0; i < mesh.NumPorts; i++ {
		link := r.in[i]
		if link.Req.Read() == 1-r.currentLevelRx[i] && !r.buffers[i].IsFull() {
			f := link.Flit.Read()
			r.buffers[i].Push(f)
			r.currentLevelRx[i] = 1 - r.currentLevelRx[i]
			if r.verbose {
				slog.Debug("router rx", "router", r.id, "dir", mesh.Direction(i).Name(), "flit", f.String())
			}
		}
		link.Ack.Write(r.currentLevelRx[i])
	}
}

// evaluateBufferMonitor publishes each direction's buffer occupancy on its
// inbound link, for the sending neighbour's buffer-level selection to
// read back next cycle. Mirrors TRouter::bufferMonitor's free_slots output.
//
// TRouter::bufferMonitor also builds a NoP (Neighbours-on-Path) record each
// cycle, a {sender_id, channel_status_neighbor[DIRECTIONS]} summary
// broadcast on four additional cardinal outputs for look-ahead selection to
// read. This router does not publish that record: its only consumer,
// NoPCAR selection, is a documented not-implemented placeholder (see
// selection.Select), so there is no admitted strategy left to read it. The
// implemented BufferLevel strategy only ever needs one neighbour's own
// occupancy, which Level already carries in full.
func (r *Router) evaluateBufferMonitor() {
	for i := 0; i < mesh.NumPorts; i++ {
		size := r.buffers[i].Size()
		r.in[i].Level.Write(size)
		if r.stats != nil {
			r.stats.ObserveBufferOccupancy(r.id, size)
		}
		if r.verbose {
			slog.Debug("router buffer", "router", r.id, "dir", mesh.Direction(i).Name(), "occupancy", size)
		}
	}
}

// evaluateTx drains each non-empty buffer towards its reserved output, one
// flit per direction per cycle, subject to the destination's ABP ack
// matching and the crossbar reservation that HEAD flits open and TAIL
// flits close. Mirrors TRouter::txProcess.
func (r *Router) evaluateTx(now int64) {
	for i := 0; i < mesh.NumPorts; i++ {
		in := mesh.Direction(i)
		if r.buffers[i].IsEmpty() {
			continue
		}

		f := r.buffers[i].Front()

		var dest mesh.Direction
		if f.FlitType == flit.Head {
			dest = r.routeHead(in, f)
		} else {
			dest = r.reservations.ShortCircuit(in)
		}

		if !r.reservations.OwnedBy(dest, in) {
			continue
		}

		link := r.out[dest]
		if r.currentLevelTx[dest] != link.Ack.Read() {
			continue
		}

		if dest != mesh.Local {
			f.HopCount++
		}
		link.Flit.Write(f)
		r.currentLevelTx[dest] = 1 - r.currentLevelTx[dest]
		link.Req.Write(r.currentLevelTx[dest])
		r.buffers[i].Pop()

		if r.verbose {
			slog.Debug("router tx", "router", r.id, "in", in.Name(), "out", dest.Name(), "flit", f.String())
		}

		if f.FlitType == flit.Tail {
			r.reservations.Release(in)
		}
		if dest == mesh.Local && r.stats != nil {
			r.stats.FlitDelivered(now, f)
		}
	}
}

// routeHead runs the routing function and, if the chosen output is free,
// reserves it for the worm entering on in. It always returns the chosen
// direction, whether or not the reservation succeeded, so the caller's
// OwnedBy check can decide whether to send this cycle.
func (r *Router) routeHead(in mesh.Direction, f flit.Flit) mesh.Direction {
	srcCoord := mesh.IDToCoordinate(f.SrcID, r.width)
	dstCoord := mesh.IDToCoordinate(f.DstID, r.width)

	admissible := routing.Route(r.algorithm, r.width, r.position, srcCoord, dstCoord, in, r.table)
	dest := selection.Select(r.strategy, admissible, r.rng, r)

	if r.reservations.IsFree(dest) {
		r.reservations.Reserve(in, dest)
	}
	return dest
}
