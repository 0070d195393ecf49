// Command noxim runs a cycle-accurate 2-D mesh Network-on-Chip simulation:
// it parses the run's knobs from flags, builds a mesh, drives it for a
// fixed number of cycles, and prints a statistics report. Grounded on the
// teacher corpus's sample testbenches (engine/driver/device construction,
// atexit.Exit(0) on clean shutdown).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/noxim/api"
	"github.com/sarchlab/noxim/config"
	"github.com/sarchlab/noxim/noc"
	"github.com/sarchlab/noxim/pe"
	"github.com/sarchlab/noxim/routing"
	"github.com/sarchlab/noxim/rtable"
	"github.com/sarchlab/noxim/selection"
	"github.com/sarchlab/noxim/stats"
	"github.com/sarchlab/noxim/verify"
)

var (
	meshDimX      = flag.Int("dim-x", 4, "mesh width in tiles")
	meshDimY      = flag.Int("dim-y", 4, "mesh height in tiles")
	bufferDepth   = flag.Int("buffer-depth", 4, "per-direction buffer capacity in flits")
	routingAlgo   = flag.String("routing", "xy", "routing algorithm: xy, west_first, north_last, negative_first, odd_even, fully_adaptive, table_based")
	selectionAlgo = flag.String("selection", "random", "selection strategy: random, buffer_level")
	distribution  = flag.String("traffic", "random_uniform", "traffic distribution: random_uniform, bit_complement, transpose1, transpose2, hotspot, table_based")
	injectionRate = flag.Float64("rate", 0.01, "packet injection probability per PE per cycle")
	minPacketSize = flag.Int("min-packet-size", 2, "minimum packet size in flits")
	maxPacketSize = flag.Int("max-packet-size", 2, "maximum packet size in flits")
	simTime       = flag.Int64("cycles", 10000, "total simulation cycles")
	warmUpCycles  = flag.Int64("warm-up", 1000, "cycles to run before statistics start counting")
	seed          = flag.Uint64("seed", 1, "RNG seed")
	routingTable  = flag.String("routing-table", "", "routing table file, required for -routing=table_based")
	trafficTable  = flag.String("traffic-table", "", "traffic table file, required for -traffic=table_based")
	verbose       = flag.Bool("verbose", false, "enable debug-level logging")
	resetAtCycle  = flag.Int64("reset-at-cycle", -1, "cycle at which to clear every router's handshake state and reservations mid-run; negative disables")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	alg, err := parseAlgorithm(*routingAlgo)
	if err != nil {
		fail(err)
	}
	strategy, err := parseStrategy(*selectionAlgo)
	if err != nil {
		fail(err)
	}
	dist, err := parseDistribution(*distribution)
	if err != nil {
		fail(err)
	}

	cfg, err := config.NewBuilder().
		WithMeshDim(*meshDimX, *meshDimY).
		WithBufferDepth(*bufferDepth).
		WithRoutingAlgorithm(alg).
		WithSelectionStrategy(strategy).
		WithRoutingTableFilename(*routingTable).
		WithTrafficTableFilename(*trafficTable).
		WithStatsWarmUpCycles(int(*warmUpCycles)).
		WithSeed(*seed).
		WithVerboseMode(*verbose).
		Build()
	if err != nil {
		fail(err)
	}

	var ttable *pe.Table
	if dist == pe.TableBased {
		data, readErr := os.ReadFile(cfg.TrafficTableFilename)
		if readErr != nil {
			fail(fmt.Errorf("reading traffic table: %w", readErr))
		}
		ttable, err = pe.LoadTable(bytes.NewReader(data), cfg.MeshDimX, cfg.MeshDimY)
		if err != nil {
			fail(fmt.Errorf("parsing traffic table: %w", err))
		}
	}

	report := verify.NewReport(cfg, ttable)
	report.WriteReport(os.Stdout)
	if !report.OK() {
		fail(fmt.Errorf("configuration failed lint checks, see report above"))
	}

	var routingTableLoader func(int) (routing.Table, error)
	if alg == routing.TableBased {
		data, readErr := os.ReadFile(cfg.RoutingTableFilename)
		if readErr != nil {
			fail(fmt.Errorf("reading routing table: %w", readErr))
		}
		routingTableLoader = func(nodeID int) (routing.Table, error) {
			return rtable.Load(bytes.NewReader(data), nodeID)
		}
	}

	collector := stats.New(*warmUpCycles)

	mesh, err := noc.Build(cfg, noc.Options{
		RoutingTableLoader: routingTableLoader,
		TrafficTable:       ttable,
		RouterStats:        collector,
		PEStats:            collector,
		Distribution:       dist,
		InjectionRate:      *injectionRate,
		MinPacketSize:      *minPacketSize,
		MaxPacketSize:      *maxPacketSize,
		WarmUpCycles:       *warmUpCycles,
	})
	if err != nil {
		fail(err)
	}

	engine := sim.NewSerialEngine()
	driver := api.NewDriverBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithTotalCycles(*simTime).
		Build("Driver", mesh)

	if *resetAtCycle >= 0 {
		driver.ScheduleReset(*resetAtCycle)
	}

	// Registered purely for observability (progress bar / component
	// listing), the same monitor.RegisterComponent-per-component pattern
	// the teacher's samples use to register their own cores, never
	// consulted for simulation correctness. The driver is the only
	// akita/v4/sim.Component this simulation has: every router and PE tile
	// is a plain value the driver steps directly (see package noc's doc
	// comment), so there are no per-tile components to register alongside
	// it.
	monitor := monitoring.NewMonitor()
	monitor.RegisterEngine(engine)
	monitor.RegisterComponent(driver)
	monitor.StartServer()

	slog.Info("simulation starting", "mesh", fmt.Sprintf("%dx%d", cfg.MeshDimX, cfg.MeshDimY), "cycles", *simTime)
	driver.Run(engine)
	slog.Info("simulation finished", "cycles", driver.Cycle())

	collector.Report(os.Stdout, cfg.MeshDimX*cfg.MeshDimY, cfg.MeshDimX)

	atexit.Exit(0)
}

func parseAlgorithm(name string) (routing.Algorithm, error) {
	switch name {
	case "xy":
		return routing.XY, nil
	case "west_first":
		return routing.WestFirst, nil
	case "north_last":
		return routing.NorthLast, nil
	case "negative_first":
		return routing.NegativeFirst, nil
	case "odd_even":
		return routing.OddEven, nil
	case "fully_adaptive":
		return routing.FullyAdaptive, nil
	case "table_based":
		return routing.TableBased, nil
	default:
		return 0, fmt.Errorf("unknown -routing %q", name)
	}
}

func parseStrategy(name string) (selection.Strategy, error) {
	switch name {
	case "random":
		return selection.Random, nil
	case "buffer_level":
		return selection.BufferLevel, nil
	default:
		return 0, fmt.Errorf("unknown -selection %q", name)
	}
}

func parseDistribution(name string) (pe.Distribution, error) {
	switch name {
	case "random_uniform":
		return pe.RandomUniform, nil
	case "bit_complement":
		return pe.BitComplement, nil
	case "transpose1":
		return pe.Transpose1, nil
	case "transpose2":
		return pe.Transpose2, nil
	case "hotspot":
		return pe.Hotspot, nil
	case "table_based":
		return pe.TableBased, nil
	default:
		return 0, fmt.Errorf("unknown -traffic %q", name)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "noxim:", err)
	atexit.Exit(1)
}
