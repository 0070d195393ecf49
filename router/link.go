package router

import (
	"github.com/sarchlab/noxim/flit"
	"github.com/sarchlab/noxim/signal"
)

// Link is one unidirectional physical channel between two tiles (or between
// a tile and its own processing element, on the LOCAL direction): a req/ack
// alternating-bit handshake carrying one flit per accepted cycle, plus a
// side-channel Level signal the receiving end uses to broadcast its current
// buffer occupancy back to the sender combinationally, with no handshake of
// its own. A Link with no neighbour wired to either end (a mesh boundary)
// is left in its zero state: Req and Ack never move, so nothing is ever
// read from it, and Level never leaves its initial invalid value.
type Link struct {
	Req   *signal.Reg[int]
	Ack   *signal.Reg[int]
	Flit  *signal.Reg[flit.Flit]
	Level *signal.Reg[int]
}

// invalidLevel marks a Level nobody has published, either because the link
// is tied off at a mesh boundary or because its first cycle hasn't run yet.
const invalidLevel = -1

// NewLink returns an unconnected link in its reset state.
func NewLink() *Link {
	return &Link{
		Req:   signal.NewReg(0),
		Ack:   signal.NewReg(0),
		Flit:  signal.NewReg(flit.Flit{}),
		Level: signal.NewReg(invalidLevel),
	}
}

// commit publishes every signal staged on the link this cycle. Safe to call
// from both ends of a shared link; committing twice is a no-op the second
// time since signal.Reg.Commit only acts on registers actually written.
func (l *Link) commit() {
	l.Req.Commit()
	l.Ack.Commit()
	l.Flit.Commit()
	l.Level.Commit()
}
