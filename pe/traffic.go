package pe

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/noxim/mesh"
)

// Distribution names how a PE picks a destination for a newly injected
// packet. Only TableBased and RandomUniform need to be statistically
// rigorous; the rest are deterministic functions of the source coordinate
// and mesh size, good enough to exercise asymmetric load patterns.
type Distribution int

const (
	RandomUniform Distribution = iota
	BitComplement
	Transpose1
	Transpose2
	Hotspot
	TableBased
)

// Table is the probability matrix a TableBased distribution samples: row
// src, column dst. A row that sums to zero marks that source never_transmit.
type Table struct {
	width, height int
	prob          [][]float64
}

// Width returns the mesh width the table was loaded for.
func (t *Table) Width() int { return t.width }

// Height returns the mesh height the table was loaded for.
func (t *Table) Height() int { return t.height }

// NeverTransmits reports whether src has no positive-probability
// destination in the table.
func (t *Table) NeverTransmits(src int) bool {
	for _, p := range t.prob[src] {
		if p > 0 {
			return false
		}
	}
	return true
}

// LoadTable parses a traffic-table text file: one line per source node,
// `src_id dst_id:probability [dst_id:probability ...]`. A source with no
// line, or whose entries all have zero probability, never transmits; a line
// holding only a src_id is rejected as malformed. Grounded on the same
// line-oriented, comment-tolerant parsing style as package rtable.
func LoadTable(r io.Reader, width, height int) (*Table, error) {
	n := width * height
	t := &Table{width: width, height: height, prob: make([][]float64, n)}
	for i := range t.prob {
		t.prob[i] = make([]float64, n)
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("pe: traffic table line %d: expected at least 2 fields", lineNo)
		}

		src, err := strconv.Atoi(fields[0])
		if err != nil || src < 0 || src >= n {
			return nil, fmt.Errorf("pe: traffic table line %d: bad src_id", lineNo)
		}

		for _, entry := range fields[1:] {
			parts := strings.SplitN(entry, ":", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("pe: traffic table line %d: bad dst:probability entry %q", lineNo, entry)
			}
			dst, err := strconv.Atoi(parts[0])
			if err != nil || dst < 0 || dst >= n {
				return nil, fmt.Errorf("pe: traffic table line %d: bad dst_id in %q", lineNo, entry)
			}
			p, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("pe: traffic table line %d: bad probability in %q", lineNo, entry)
			}
			t.prob[src][dst] = p
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pe: scanning traffic table: %w", err)
	}

	return t, nil
}

// pick samples a destination id for src from the table's row using r, a
// value uniformly drawn from [0,1). If the row's weights don't sum to 1 the
// last destination with positive weight absorbs the remainder, so pick
// always returns a valid id given a non-never_transmit row.
func (t *Table) pick(src int, r float64) int {
	var cumulative float64
	last := -1
	for dst, p := range t.prob[src] {
		if p <= 0 {
			continue
		}
		last = dst
		cumulative += p
		if r < cumulative {
			return dst
		}
	}
	if last < 0 {
		panic("pe: pick called on a never_transmit source")
	}
	return last
}

// destination returns the destination node id a packet injected at src
// should target, given the configured distribution and a uniform random
// sample in [0,1) for the distributions that need one.
func destination(dist Distribution, table *Table, src mesh.Coordinate, width, height int, uniform float64) int {
	srcID := src.ID(width)
	switch dist {
	case TableBased:
		return table.pick(srcID, uniform)
	case RandomUniform:
		n := width * height
		d := int(uniform * float64(n))
		if d == srcID {
			d = (d + 1) % n
		}
		return d
	case BitComplement:
		return mesh.Coordinate{X: width - 1 - src.X, Y: height - 1 - src.Y}.ID(width)
	case Transpose1:
		return mesh.Coordinate{X: src.Y, Y: src.X}.ID(width)
	case Transpose2:
		return mesh.Coordinate{X: height - 1 - src.Y, Y: width - 1 - src.X}.ID(width)
	case Hotspot:
		return mesh.Coordinate{X: 0, Y: 0}.ID(width)
	default:
		panic("pe: unknown traffic distribution")
	}
}
