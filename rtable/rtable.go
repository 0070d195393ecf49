// Package rtable loads the global routing table the TableBased routing
// algorithm consults: an immutable mapping from (incoming direction,
// destination node id) at a given router to the set of admissible output
// directions. The file-parsing and error-wrapping style is grounded on the
// teacher corpus's JSON/route loaders (decode-then-validate, errors wrapped
// with fmt.Errorf("...: %w", err)), adapted here to the line-oriented text
// format this simulator's routing tables use instead of JSON.
package rtable

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/noxim/mesh"
)

type key struct {
	nodeID int
	inDir  mesh.Direction
	dstID  int
}

// Table is the immutable, per-node routing table loaded from file. It
// implements routing.Table.
type Table struct {
	nodeID  int
	entries map[key][]mesh.Direction
}

// AdmissibleOutputs returns the admissible output directions recorded for
// (inDir, dstID) at this table's node, or nil if no entry matches.
func (t *Table) AdmissibleOutputs(inDir mesh.Direction, dstID int) []mesh.Direction {
	return t.entries[key{nodeID: t.nodeID, inDir: inDir, dstID: dstID}]
}

// Load parses a routing-table text file for the router identified by
// nodeID. Lines are `node_id in_dir dst_id out_dir[,out_dir...]`; blank
// lines and lines starting with '#' are ignored. Only entries whose
// node_id matches nodeID are retained. Returns an error on any malformed
// line, wrapped with the offending line number.
func Load(r io.Reader, nodeID int) (*Table, error) {
	t := &Table{nodeID: nodeID, entries: make(map[key][]mesh.Direction)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("rtable: line %d: expected 4 fields, got %d", lineNo, len(fields))
		}

		entryNode, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("rtable: line %d: bad node_id: %w", lineNo, err)
		}
		if entryNode != nodeID {
			continue
		}

		inDir, err := mesh.ParseDirection(fields[1])
		if err != nil {
			return nil, fmt.Errorf("rtable: line %d: %w", lineNo, err)
		}

		dstID, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("rtable: line %d: bad dst_id: %w", lineNo, err)
		}

		outNames := strings.Split(fields[3], ",")
		outs := make([]mesh.Direction, 0, len(outNames))
		for _, name := range outNames {
			d, err := mesh.ParseDirection(name)
			if err != nil {
				return nil, fmt.Errorf("rtable: line %d: %w", lineNo, err)
			}
			outs = append(outs, d)
		}
		if len(outs) == 0 {
			return nil, fmt.Errorf("rtable: line %d: entry has no admissible outputs", lineNo)
		}

		t.entries[key{nodeID: entryNode, inDir: inDir, dstID: dstID}] = outs
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("rtable: scanning table: %w", err)
	}

	return t, nil
}
