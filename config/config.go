// Package config holds the simulator's knobs as a single immutable value,
// assembled through a functional-options builder the way the teacher
// corpus's device builders are, and validated once at startup instead of
// being checked piecemeal by every consumer.
package config

import (
	"fmt"

	"github.com/sarchlab/noxim/routing"
	"github.com/sarchlab/noxim/selection"
)

// Config is the full set of knobs a simulation run is parameterized by.
// Once built it never changes; every component that needs a knob reads it
// from its own copy of this value.
type Config struct {
	MeshDimX, MeshDimY int
	BufferDepth        int

	RoutingAlgorithm  routing.Algorithm
	SelectionStrategy selection.Strategy

	RoutingTableFilename string // required iff RoutingAlgorithm == routing.TableBased
	TrafficTableFilename string

	StatsWarmUpCycles int
	Seed              uint64

	VerboseMode bool
}

// Builder assembles a Config through chained With* calls, validating it on
// Build rather than at each individual setter.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder seeded with the reference simulator's
// defaults: a 4x4 mesh, 4-flit buffers, XY routing, random selection.
func NewBuilder() Builder {
	return Builder{cfg: Config{
		MeshDimX:          4,
		MeshDimY:          4,
		BufferDepth:       4,
		RoutingAlgorithm:  routing.XY,
		SelectionStrategy: selection.Random,
		StatsWarmUpCycles: 0,
		Seed:              1,
	}}
}

func (b Builder) WithMeshDim(x, y int) Builder {
	b.cfg.MeshDimX, b.cfg.MeshDimY = x, y
	return b
}

func (b Builder) WithBufferDepth(depth int) Builder {
	b.cfg.BufferDepth = depth
	return b
}

func (b Builder) WithRoutingAlgorithm(alg routing.Algorithm) Builder {
	b.cfg.RoutingAlgorithm = alg
	return b
}

func (b Builder) WithSelectionStrategy(strategy selection.Strategy) Builder {
	b.cfg.SelectionStrategy = strategy
	return b
}

func (b Builder) WithRoutingTableFilename(path string) Builder {
	b.cfg.RoutingTableFilename = path
	return b
}

func (b Builder) WithTrafficTableFilename(path string) Builder {
	b.cfg.TrafficTableFilename = path
	return b
}

func (b Builder) WithStatsWarmUpCycles(cycles int) Builder {
	b.cfg.StatsWarmUpCycles = cycles
	return b
}

func (b Builder) WithSeed(seed uint64) Builder {
	b.cfg.Seed = seed
	return b
}

func (b Builder) WithVerboseMode(verbose bool) Builder {
	b.cfg.VerboseMode = verbose
	return b
}

// Build validates the accumulated knobs and returns the immutable Config,
// or an error describing the first problem found. Configuration errors are
// always a wrapped error here, never a panic: this runs at startup, before
// any simulated cycle, and the caller (the CLI) is expected to report it
// and exit rather than recover mid-run.
func (b Builder) Build() (Config, error) {
	cfg := b.cfg

	if cfg.MeshDimX <= 0 || cfg.MeshDimY <= 0 {
		return Config{}, fmt.Errorf("config: mesh dimensions must be positive, got %dx%d", cfg.MeshDimX, cfg.MeshDimY)
	}
	if cfg.BufferDepth <= 0 {
		return Config{}, fmt.Errorf("config: buffer depth must be positive, got %d", cfg.BufferDepth)
	}
	if cfg.RoutingAlgorithm == routing.TableBased && cfg.RoutingTableFilename == "" {
		return Config{}, fmt.Errorf("config: routing_table_filename is required for table-based routing")
	}

	return cfg, nil
}
