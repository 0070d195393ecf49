package verify

import (
	"fmt"
	"os"

	"github.com/sarchlab/noxim/config"
	"github.com/sarchlab/noxim/pe"
	"github.com/sarchlab/noxim/routing"
)

// RunLint checks cfg, and the traffic table it names (if any), for problems
// that would otherwise only surface as a panic once the mesh starts
// running. ttable may be nil; pass the table already loaded by the caller
// so RunLint doesn't need to re-parse the file.
func RunLint(cfg config.Config, ttable *pe.Table) []Issue {
	var issues []Issue

	if cfg.MeshDimX <= 0 || cfg.MeshDimY <= 0 {
		issues = append(issues, Issue{
			Type:    IssueConfig,
			NodeID:  -1,
			Message: fmt.Sprintf("mesh dimensions must be positive, got %dx%d", cfg.MeshDimX, cfg.MeshDimY),
		})
	}

	if cfg.BufferDepth <= 0 {
		issues = append(issues, Issue{
			Type:    IssueConfig,
			NodeID:  -1,
			Message: fmt.Sprintf("buffer depth must be positive, got %d", cfg.BufferDepth),
		})
	}

	if cfg.RoutingAlgorithm == routing.TableBased {
		issues = append(issues, checkTableFile("routing_table_filename", cfg.RoutingTableFilename)...)
	}

	if ttable != nil {
		issues = append(issues, checkTrafficTable(cfg, ttable)...)
	} else if cfg.TrafficTableFilename != "" {
		issues = append(issues, checkTableFile("traffic_table_filename", cfg.TrafficTableFilename)...)
	}

	return issues
}

func checkTableFile(knob, filename string) []Issue {
	if filename == "" {
		return []Issue{{
			Type:    IssueConfig,
			NodeID:  -1,
			Message: fmt.Sprintf("%s is required but was not set", knob),
		}}
	}
	if _, err := os.Stat(filename); err != nil {
		return []Issue{{
			Type:    IssueTable,
			NodeID:  -1,
			Message: fmt.Sprintf("%s %q is not readable: %v", knob, filename, err),
		}}
	}
	return nil
}

// checkTrafficTable validates an already-loaded traffic table against the
// mesh dimensions it's about to drive, and flags nodes that can never
// transmit (informational, not necessarily an error: the reference
// simulator treats an all-zero row as a deliberate never_transmit marker).
func checkTrafficTable(cfg config.Config, t *pe.Table) []Issue {
	var issues []Issue

	if t.Width() != cfg.MeshDimX || t.Height() != cfg.MeshDimY {
		issues = append(issues, Issue{
			Type:   IssueTable,
			NodeID: -1,
			Message: fmt.Sprintf("traffic table was loaded for a %dx%d mesh but config specifies %dx%d",
				t.Width(), t.Height(), cfg.MeshDimX, cfg.MeshDimY),
		})
		return issues
	}

	silent := 0
	n := cfg.MeshDimX * cfg.MeshDimY
	for id := 0; id < n; id++ {
		if t.NeverTransmits(id) {
			silent++
		}
	}
	if silent == n {
		issues = append(issues, Issue{
			Type:    IssueTable,
			NodeID:  -1,
			Message: "every node in the traffic table is never_transmit; no traffic will be generated",
		})
	}

	return issues
}
