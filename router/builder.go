package router

import (
	"fmt"
	"math/rand/v2"

	"github.com/sarchlab/noxim/buffer"
	"github.com/sarchlab/noxim/mesh"
	"github.com/sarchlab/noxim/reservation"
	"github.com/sarchlab/noxim/routing"
	"github.com/sarchlab/noxim/selection"
)

// Builder constructs Routers with shared defaults, following the
// functional-options pattern the teacher corpus uses for its own
// component builders.
type Builder struct {
	width     int
	depth     int
	algorithm routing.Algorithm
	strategy  selection.Strategy
	table     routing.Table
	rng       *rand.Rand
	stats     StatsSink
	verbose   bool
}

// NewBuilder returns a Builder with a buffer depth of 4 and XY/Random
// routing and selection, the same defaults the reference simulator ships.
func NewBuilder() Builder {
	return Builder{
		depth:     4,
		algorithm: routing.XY,
		strategy:  selection.Random,
	}
}

// WithWidth sets the mesh width used to convert node ids to coordinates.
func (b Builder) WithWidth(width int) Builder {
	if width <= 0 {
		panic("router: width must be positive")
	}
	b.width = width
	return b
}

// WithDepth sets the per-direction buffer capacity in flits.
func (b Builder) WithDepth(depth int) Builder {
	if depth <= 0 {
		panic("router: depth must be positive")
	}
	b.depth = depth
	return b
}

// WithAlgorithm sets the routing algorithm.
func (b Builder) WithAlgorithm(alg routing.Algorithm) Builder {
	b.algorithm = alg
	return b
}

// WithSelection sets the selection strategy.
func (b Builder) WithSelection(strategy selection.Strategy) Builder {
	b.strategy = strategy
	return b
}

// WithTable sets the routing table consulted by routing.TableBased. Only
// required when WithAlgorithm(routing.TableBased) is used.
func (b Builder) WithTable(table routing.Table) Builder {
	b.table = table
	return b
}

// WithRNG sets the seeded random source selection.Random draws from.
func (b Builder) WithRNG(rng *rand.Rand) Builder {
	b.rng = rng
	return b
}

// WithStatsSink sets the sink notified of flits delivered at this router's
// LOCAL port.
func (b Builder) WithStatsSink(stats StatsSink) Builder {
	b.stats = stats
	return b
}

// WithVerbose enables a slog.Debug record on every rx accept, tx send, and
// buffer-occupancy publish, mirroring TRouter.cpp's verbose_mode-gated cout
// statements in rxProcess/txProcess/bufferMonitor. Gated here (not left to
// the log handler's own level filter alone) so a non-verbose run never pays
// even the cost of building the log attributes.
func (b Builder) WithVerbose(verbose bool) Builder {
	b.verbose = verbose
	return b
}

// Build creates a Router at position, identified by id, with every
// direction initially tied off to a dead Link (see InvalidateDirection);
// the mesh builder wires live neighbours in afterwards.
func (b Builder) Build(id int, position mesh.Coordinate) *Router {
	if b.width == 0 {
		panic("router: Build called without WithWidth")
	}

	r := &Router{
		id:           id,
		position:     position,
		width:        b.width,
		depth:        b.depth,
		algorithm:    b.algorithm,
		strategy:     b.strategy,
		table:        b.table,
		rng:          b.rng,
		stats:        b.stats,
		verbose:      b.verbose,
		reservations: reservation.New(),
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(1, 1))
	}

	for i := 0; i < mesh.NumPorts; i++ {
		name := fmt.Sprintf("Router%d.Buf%s", id, mesh.Direction(i).Name())
		r.buffers[i] = buffer.New(name, b.depth)
		r.in[i] = NewLink()
		r.out[i] = NewLink()
	}

	return r
}
