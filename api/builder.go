package api

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/noxim/noc"
)

// DriverBuilder creates a new Driver, following the engine/freq
// chained-options shape the reference testbenches build every
// TickingComponent with.
type DriverBuilder struct {
	engine      sim.Engine
	freq        sim.Freq
	totalCycles int64
}

// NewDriverBuilder returns a DriverBuilder defaulted to 1GHz.
func NewDriverBuilder() DriverBuilder {
	return DriverBuilder{freq: 1 * sim.GHz}
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithTotalCycles sets how many cycles Run drives the mesh for.
func (b DriverBuilder) WithTotalCycles(cycles int64) DriverBuilder {
	b.totalCycles = cycles
	return b
}

// Build creates a Driver for mesh.
func (b DriverBuilder) Build(name string, mesh *noc.Mesh) *Driver {
	if b.totalCycles <= 0 {
		panic("api: Build called without WithTotalCycles")
	}

	d := &Driver{
		mesh:        mesh,
		totalCycles: b.totalCycles,
	}
	d.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, d)

	return d
}
