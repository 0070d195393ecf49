package verify

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/noxim/config"
	"github.com/sarchlab/noxim/pe"
)

// Report is the outcome of linting one Config: every Issue found, already
// categorized by type for WriteReport's sections.
type Report struct {
	Cfg          config.Config
	ConfigIssues []Issue
	TableIssues  []Issue
}

// NewReport runs RunLint against cfg and the already-loaded traffic table
// (nil if none), and returns the categorized findings.
func NewReport(cfg config.Config, ttable *pe.Table) *Report {
	issues := RunLint(cfg, ttable)

	r := &Report{Cfg: cfg}
	for _, issue := range issues {
		switch issue.Type {
		case IssueConfig:
			r.ConfigIssues = append(r.ConfigIssues, issue)
		default:
			r.TableIssues = append(r.TableIssues, issue)
		}
	}
	return r
}

// WriteReport writes a formatted lint summary to w, styled after the
// teacher's own ✓/⚠-glyph, "="/"-"-separator report sections.
func (r *Report) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "NOXIM CONFIGURATION LINT REPORT")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\nMesh: %dx%d, buffer depth %d, routing=%s, selection=%s\n",
		r.Cfg.MeshDimX, r.Cfg.MeshDimY, r.Cfg.BufferDepth,
		r.Cfg.RoutingAlgorithm, r.Cfg.SelectionStrategy)

	total := len(r.ConfigIssues) + len(r.TableIssues)
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "LINT CHECKS")
	fmt.Fprintln(w, separator)

	if total == 0 {
		fmt.Fprintln(w, "✓ No issues found")
	} else {
		fmt.Fprintf(w, "⚠ Found %d issue(s):\n", total)
		for _, issue := range r.ConfigIssues {
			fmt.Fprintf(w, "  %s\n", issue)
		}
		for _, issue := range r.TableIssues {
			fmt.Fprintf(w, "  %s\n", issue)
		}
	}

	fmt.Fprintln(w)
}

// OK reports whether the lint pass found zero issues.
func (r *Report) OK() bool {
	return len(r.ConfigIssues) == 0 && len(r.TableIssues) == 0
}
