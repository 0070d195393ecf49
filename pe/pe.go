// Package pe implements the processing element stand-in that drives
// synthetic traffic into the mesh: a traffic-table-or-distribution-driven
// packet injector and a sink that drains whatever its tile's router
// delivers. It speaks the same req/flit/ack alternating-bit protocol on
// the LOCAL direction that a router speaks to its cardinal neighbours, so
// from the router's point of view a PE is just another link endpoint.
package pe

import (
	"math/rand/v2"

	"github.com/sarchlab/noxim/flit"
	"github.com/sarchlab/noxim/mesh"
	"github.com/sarchlab/noxim/router"
)

// StatsSink is notified when this PE injects a packet, so the statistics
// collector can track offered load independently of what's eventually
// delivered (tracked separately via router.StatsSink on the receiving
// tile).
type StatsSink interface {
	PacketInjected(now int64, numFlits int)
}

// PE is one tile's traffic generator and sink.
type PE struct {
	id       int
	position mesh.Coordinate
	width    int

	rate             float64
	minSize, maxSize int
	neverTransmit    bool
	distribution     Distribution
	table            *Table
	warmUpCycles     int64

	rng *rand.Rand
	seq int
	in  *router.Link // router -> PE (this PE's own LOCAL-tx)
	out *router.Link // PE -> router (this PE's own LOCAL-rx)

	txLevel int
	rxLevel int
	pending []flit.Flit

	stats StatsSink
}

// SetLinks wires the PE to its tile's router: out is the channel the PE
// sends on (the router's LOCAL rx input), in is the channel the PE
// receives on (the router's LOCAL tx output).
func (p *PE) SetLinks(out, in *router.Link) {
	p.out = out
	p.in = in
}

// Evaluate runs one cycle: possibly starts injecting a new packet, makes
// progress sending any already-pending flit, and accepts any flit the
// router has delivered. Like Router.Evaluate, this only stages writes;
// nothing is visible to the router until Commit.
func (p *PE) Evaluate(now int64) {
	if len(p.pending) == 0 && !p.neverTransmit && now >= p.warmUpCycles {
		if p.rng.Float64() < p.rate {
			p.injectPacket(now)
		}
	}

	if len(p.pending) > 0 && p.txLevel == p.out.Ack.Read() {
		f := p.pending[0]
		p.pending = p.pending[1:]
		p.out.Flit.Write(f)
		p.txLevel = 1 - p.txLevel
		p.out.Req.Write(p.txLevel)
	}

	if p.in.Req.Read() == 1-p.rxLevel {
		p.rxLevel = 1 - p.rxLevel
		// The flit itself (p.in.Flit.Read()) is consumed by the
		// statistics collector via the delivering router's
		// StatsSink hook; the PE's only remaining job is to
		// complete the handshake so the router's output frees up.
	}
	p.in.Ack.Write(p.rxLevel)
}

// Commit publishes every signal this PE staged a write to this cycle.
func (p *PE) Commit() {
	p.out.Req.Commit()
	p.out.Flit.Commit()
	p.in.Ack.Commit()
}

func (p *PE) injectPacket(now int64) {
	size := p.minSize
	if p.maxSize > p.minSize {
		size = p.minSize + p.rng.IntN(p.maxSize-p.minSize+1)
	}

	dstID := destination(p.distribution, p.table, p.position, p.width, p.width, p.rng.Float64())

	p.pending = flit.BuildPacket(p.id, dstID, p.seq, size, now)
	p.seq++

	if p.stats != nil {
		p.stats.PacketInjected(now, size)
	}
}
