// Package noc assembles a W×H mesh of router.Router/pe.PE tiles into one
// fabric and drives it cycle by cycle. It is the Go analogue of the
// reference simulator's NoC::buildMesh: wire every tile's four cardinal
// links to its neighbour's matching link, invalidate the links that fall
// off the mesh's edge, and wire each tile's router to its own PE on the
// LOCAL port.
package noc

import (
	"fmt"
	"math/rand/v2"

	"github.com/sarchlab/noxim/config"
	"github.com/sarchlab/noxim/mesh"
	"github.com/sarchlab/noxim/pe"
	"github.com/sarchlab/noxim/router"
	"github.com/sarchlab/noxim/routing"
)

// Tile bundles one mesh position's router and processing element.
type Tile struct {
	Router *router.Router
	PE     *pe.PE
}

// Mesh is a built W×H grid of tiles, ready to be stepped one cycle at a
// time by a driver (see package api).
type Mesh struct {
	Width, Height int
	tiles         []*Tile // row-major, index = y*Width+x, matching mesh.Coordinate.ID
}

// Tile returns the tile at id, or nil if id is out of range. The Go
// analogue of NoC::searchNode, which in the reference simulator scans the
// whole matrix; here the row-major layout makes that a direct index.
func (m *Mesh) Tile(id int) *Tile {
	if id < 0 || id >= len(m.tiles) {
		return nil
	}
	return m.tiles[id]
}

// Tiles returns every tile in row-major id order.
func (m *Mesh) Tiles() []*Tile { return m.tiles }

// Reset clears every router's alternating-bit state and reservation table,
// as if a reset pulse had just been asserted mesh-wide mid-simulation. PE
// injection state is untouched: a reset in the reference simulator only
// clears the router-side handshake and reservations, not in-flight traffic
// generation.
func (m *Mesh) Reset() {
	for _, t := range m.tiles {
		t.Router.Reset()
	}
}

// Evaluate runs one cycle's Evaluate phase on every PE then every router,
// in a fixed row-major order. None of the writes staged here are visible
// to any tile until Commit runs.
func (m *Mesh) Evaluate(now int64) {
	for _, t := range m.tiles {
		t.PE.Evaluate(now)
	}
	for _, t := range m.tiles {
		t.Router.Evaluate(now)
	}
}

// Commit publishes every register every tile staged a write to this cycle.
func (m *Mesh) Commit() {
	for _, t := range m.tiles {
		t.PE.Commit()
	}
	for _, t := range m.tiles {
		t.Router.Commit()
	}
}

// Options carries the already-loaded traffic table and per-node routing
// table loader Build needs when cfg selects table-based traffic/routing;
// both are nil for the algorithmic distribution/routing cases.
type Options struct {
	// RoutingTableLoader returns the routing.Table for a single node,
	// given its id. Routing tables are inherently per-node (see package
	// rtable), so Build calls this once per tile rather than taking a
	// single shared Table. Required iff cfg.RoutingAlgorithm is
	// routing.TableBased.
	RoutingTableLoader func(nodeID int) (routing.Table, error)

	TrafficTable  *pe.Table
	RouterStats   router.StatsSink
	PEStats       pe.StatsSink
	Distribution  pe.Distribution
	InjectionRate float64
	MinPacketSize int
	MaxPacketSize int
	WarmUpCycles  int64
}

// Build assembles a Mesh from cfg and opts: one router and one PE per grid
// position, every cardinal link wired to its neighbour's matching link,
// edge directions invalidated, and each tile's router wired to its own PE
// on the LOCAL port. Grounded on NoC::buildMesh's two-pass
// tile-then-wire structure.
func Build(cfg config.Config, opts Options) (*Mesh, error) {
	width, height := cfg.MeshDimX, cfg.MeshDimY
	n := width * height

	m := &Mesh{Width: width, Height: height, tiles: make([]*Tile, n)}

	for id := 0; id < n; id++ {
		pos := mesh.IDToCoordinate(id, width)

		var table routing.Table
		if opts.RoutingTableLoader != nil {
			t, err := opts.RoutingTableLoader(id)
			if err != nil {
				return nil, fmt.Errorf("noc: loading routing table for node %d: %w", id, err)
			}
			table = t
		}

		r := router.NewBuilder().
			WithWidth(width).
			WithDepth(cfg.BufferDepth).
			WithAlgorithm(cfg.RoutingAlgorithm).
			WithSelection(cfg.SelectionStrategy).
			WithTable(table).
			WithRNG(rand.New(rand.NewPCG(cfg.Seed, uint64(id)))).
			WithStatsSink(opts.RouterStats).
			WithVerbose(cfg.VerboseMode).
			Build(id, pos)

		p := pe.NewBuilder().
			WithWidth(width).
			WithInjectionRate(opts.InjectionRate).
			WithPacketSizeRange(opts.MinPacketSize, opts.MaxPacketSize).
			WithDistribution(opts.Distribution).
			WithTable(opts.TrafficTable).
			WithWarmUpCycles(opts.WarmUpCycles).
			WithStatsSink(opts.PEStats).
			Build(id, pos, cfg.Seed)

		m.tiles[id] = &Tile{Router: r, PE: p}
	}

	wireCardinalLinks(m)
	wireLocalLinks(m)
	invalidateBoundary(m)

	return m, nil
}

// wireCardinalLinks connects every tile to its East/South neighbour (which,
// by symmetry, also wires that neighbour's West/North): one router.Link per
// direction of travel, shared by both tiles' matching SetIn/SetOut calls,
// exactly as NoC::buildMesh binds req_tx[EAST] and req_rx[WEST] of
// adjacent tiles to the same signal.
func wireCardinalLinks(m *Mesh) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			id := mesh.Coordinate{X: x, Y: y}.ID(m.Width)
			r := m.tiles[id].Router

			if x+1 < m.Width {
				eastID := mesh.Coordinate{X: x + 1, Y: y}.ID(m.Width)
				eastR := m.tiles[eastID].Router

				eastward := router.NewLink()
				r.SetOut(mesh.East, eastward)
				eastR.SetIn(mesh.West, eastward)

				westward := router.NewLink()
				eastR.SetOut(mesh.West, westward)
				r.SetIn(mesh.East, westward)
			}

			if y+1 < m.Height {
				southID := mesh.Coordinate{X: x, Y: y + 1}.ID(m.Width)
				southR := m.tiles[southID].Router

				southward := router.NewLink()
				r.SetOut(mesh.South, southward)
				southR.SetIn(mesh.North, southward)

				northward := router.NewLink()
				southR.SetOut(mesh.North, northward)
				r.SetIn(mesh.South, northward)
			}
		}
	}
}

// wireLocalLinks connects each tile's router to its own PE on the LOCAL
// port: one link carrying PE-to-router traffic, one carrying
// router-to-PE traffic.
func wireLocalLinks(m *Mesh) {
	for _, t := range m.tiles {
		toRouter := router.NewLink()
		t.Router.SetIn(mesh.Local, toRouter)

		toPE := router.NewLink()
		t.Router.SetOut(mesh.Local, toPE)

		t.PE.SetLinks(toRouter, toPE)
	}
}

// invalidateBoundary marks every direction that would point off the edge
// of the mesh, so reservation.Table panics rather than silently accepting
// a route towards a nonexistent neighbour. Mirrors the
// reservation_table.invalidate() loop at the end of NoC::buildMesh.
func invalidateBoundary(m *Mesh) {
	for x := 0; x < m.Width; x++ {
		top := mesh.Coordinate{X: x, Y: 0}.ID(m.Width)
		bottom := mesh.Coordinate{X: x, Y: m.Height - 1}.ID(m.Width)
		m.tiles[top].Router.InvalidateDirection(mesh.North)
		m.tiles[bottom].Router.InvalidateDirection(mesh.South)
	}
	for y := 0; y < m.Height; y++ {
		left := mesh.Coordinate{X: 0, Y: y}.ID(m.Width)
		right := mesh.Coordinate{X: m.Width - 1, Y: y}.ID(m.Width)
		m.tiles[left].Router.InvalidateDirection(mesh.West)
		m.tiles[right].Router.InvalidateDirection(mesh.East)
	}
}
