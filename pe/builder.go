package pe

import (
	"math/rand/v2"

	"github.com/sarchlab/noxim/mesh"
)

// Builder constructs PEs with shared defaults.
type Builder struct {
	width            int
	rate             float64
	minSize, maxSize int
	distribution     Distribution
	table            *Table
	warmUpCycles     int64
	stats            StatsSink
}

// NewBuilder returns a Builder with a 1% injection rate, 2-flit fixed-size
// packets, and uniform random destinations, matching the reference
// simulator's defaults.
func NewBuilder() Builder {
	return Builder{
		rate:    0.01,
		minSize: 2,
		maxSize: 2,
	}
}

func (b Builder) WithWidth(width int) Builder {
	b.width = width
	return b
}

func (b Builder) WithInjectionRate(rate float64) Builder {
	b.rate = rate
	return b
}

func (b Builder) WithPacketSizeRange(min, max int) Builder {
	if min < 2 || max < min {
		panic("pe: packet size range must satisfy 2 <= min <= max")
	}
	b.minSize, b.maxSize = min, max
	return b
}

func (b Builder) WithDistribution(dist Distribution) Builder {
	b.distribution = dist
	return b
}

func (b Builder) WithTable(table *Table) Builder {
	b.table = table
	return b
}

func (b Builder) WithWarmUpCycles(cycles int64) Builder {
	b.warmUpCycles = cycles
	return b
}

func (b Builder) WithStatsSink(stats StatsSink) Builder {
	b.stats = stats
	return b
}

// Build creates a PE for the tile at id/position, seeded from rngSeed so a
// whole mesh of PEs is reproducible from one simulation seed while each
// tile still draws an independent stream.
func (b Builder) Build(id int, position mesh.Coordinate, rngSeed uint64) *PE {
	if b.width == 0 {
		panic("pe: Build called without WithWidth")
	}

	never := b.distribution == TableBased && b.table != nil && b.table.NeverTransmits(id)

	return &PE{
		id:            id,
		position:      position,
		width:         b.width,
		rate:          b.rate,
		minSize:       b.minSize,
		maxSize:       b.maxSize,
		neverTransmit: never,
		distribution:  b.distribution,
		table:         b.table,
		warmUpCycles:  b.warmUpCycles,
		rng:           rand.New(rand.NewPCG(rngSeed, uint64(id))),
		stats:         b.stats,
	}
}
