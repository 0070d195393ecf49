// Package flit defines the traffic unit that moves one hop per cycle
// through the mesh: the Flit value type and the HEAD/BODY/TAIL packet
// structure built from it.
package flit

import "fmt"

// Type distinguishes the position of a Flit within its packet.
type Type int

const (
	// Head carries the routing decision for the whole packet and acquires
	// the output reservation at every router it crosses.
	Head Type = iota
	// Body carries payload only; it follows the short-circuit left by Head.
	Body
	// Tail is the last flit of a packet; it releases the reservation it
	// rides on once delivered.
	Tail
)

func (t Type) String() string {
	switch t {
	case Head:
		return "HEAD"
	case Body:
		return "BODY"
	case Tail:
		return "TAIL"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Flit is the fixed-size unit of flow control: the smallest quantum
// transferred per cycle on a link.
type Flit struct {
	SrcID          int
	DstID          int
	SequenceNumber int
	FlitType       Type
	Timestamp      int64 // cycle the flit was injected by its source PE
	HopCount       int   // incremented each time a router forwards it to a neighbouring router (not on LOCAL delivery)
}

func (f Flit) String() string {
	return fmt.Sprintf("%s[src=%d dst=%d seq=%d hop=%d]",
		f.FlitType, f.SrcID, f.DstID, f.SequenceNumber, f.HopCount)
}

// MinPacketSize is the smallest packet BuildPacket accepts: a HEAD followed
// immediately by a TAIL. A worm needs both to open and close a reservation,
// so single-flit packets are not supported.
const MinPacketSize = 2

// BuildPacket returns the HEAD, BODY*, TAIL sequence for one packet of the
// given size (size must be >= MinPacketSize).
func BuildPacket(srcID, dstID, sequenceNumber int, size int, injectedAt int64) []Flit {
	if size < MinPacketSize {
		panic(fmt.Sprintf("flit: packet size must be >= %d, got %d", MinPacketSize, size))
	}

	flits := make([]Flit, size)
	for i := range flits {
		t := Body
		switch i {
		case 0:
			t = Head
		case size - 1:
			t = Tail
		}

		flits[i] = Flit{
			SrcID:          srcID,
			DstID:          dstID,
			SequenceNumber: sequenceNumber,
			FlitType:       t,
			Timestamp:      injectedAt,
		}
	}
	return flits
}
