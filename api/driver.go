// Package api provides the driver that owns a noc.Mesh and runs it for a
// fixed number of cycles against an akita simulation engine. The driver is
// the simulation's only akita/v4/sim.TickingComponent: every router and PE
// in the mesh is a plain value it steps explicitly, in the same
// Evaluate-then-Commit order every cycle (see the mesh's own doc comment).
package api

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/noxim/noc"
)

// Driver runs a built mesh for a configured number of cycles.
type Driver struct {
	*sim.TickingComponent

	mesh        *noc.Mesh
	cycle       int64
	totalCycles int64

	resetAtCycle int64
	resetPending bool
}

// Cycle returns the number of cycles run so far.
func (d *Driver) Cycle() int64 { return d.cycle }

// Reset immediately clears the owned mesh's router state (see
// noc.Mesh.Reset). Exposed so any caller holding the driver can trigger a
// mid-simulation reset, matching SPEC scenario S4.
func (d *Driver) Reset() {
	d.mesh.Reset()
}

// ScheduleReset arranges for Reset to run automatically the moment Tick
// reaches cycle, for an unattended run that should reset itself partway
// through without the caller polling Cycle().
func (d *Driver) ScheduleReset(cycle int64) {
	d.resetAtCycle = cycle
	d.resetPending = true
}

// Tick advances the mesh by exactly one cycle: every tile evaluates against
// the registers latched at the start of the cycle, then every tile commits
// its staged writes. Returns false once totalCycles have run, which is how
// an akita engine knows the simulation is over.
func (d *Driver) Tick(now sim.VTimeInSec) (madeProgress bool) {
	if d.cycle >= d.totalCycles {
		return false
	}

	if d.resetPending && d.cycle == d.resetAtCycle {
		d.Reset()
		d.resetPending = false
	}

	d.mesh.Evaluate(d.cycle)
	d.mesh.Commit()
	d.cycle++

	return true
}

// Run schedules the driver's first tick and runs engine to completion,
// i.e. until Tick returns false. Mirrors the reference testbenches'
// schedule-then-Run pattern.
func (d *Driver) Run(engine sim.Engine) {
	engine.Schedule(sim.MakeTickEvent(d.TickingComponent, 0))
	engine.Run()
}
