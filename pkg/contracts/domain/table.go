package domain

import (
	"fmt"
	"strings"
)

// RawRecord is a dump as decoded from the instrument's pickle file.
// Nested dicts are map[string]any, sequences are []any and byte strings are []byte.
type RawRecord map[string]any

// TableID identifies one derived view of a dump.
type TableID int

const (
	TableFilename TableID = iota
	TableFilepath
	TableLine
	TableIndex
	TableIntensity
	TableActive
	TableConcentration
	TableSkipped
)

var tableNames = [...]string{
	TableFilename:      "filename",
	TableFilepath:      "filepath",
	TableLine:          "line",
	TableIndex:         "index",
	TableIntensity:     "intensity",
	TableActive:        "active",
	TableConcentration: "concentration",
	TableSkipped:       "skipped",
}

// String returns the table name used by lookups and exports.
func (id TableID) String() string {
	if id.Valid() {
		return tableNames[id]
	}
	return fmt.Sprintf("table(%d)", int(id))
}

// Valid reports whether id names a known table.
func (id TableID) Valid() bool {
	return id >= 0 && int(id) < len(tableNames)
}

// TableIDs returns every known table in declaration order.
func TableIDs() []TableID {
	ids := make([]TableID, len(tableNames))
	for i := range tableNames {
		ids[i] = TableID(i)
	}
	return ids
}

// ParseTableID resolves a table name. Matching is case-insensitive.
func ParseTableID(name string) (TableID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range tableNames {
		if n == name {
			return TableID(i), true
		}
	}
	return 0, false
}

// Table is implemented by every derived view; switch on the concrete type
// to reach the data.
type Table interface {
	TableID() TableID
}

// Filename is the stem of the path stored in the dump.
type Filename string

func (Filename) TableID() TableID { return TableFilename }

// Filepath is the path stored in the dump, unmodified.
type Filepath string

func (Filepath) TableID() TableID { return TableFilepath }

// ProbeKey identifies one replicate measurement of a probe.
type ProbeKey struct {
	ProbeName    string `json:"probe_name"`
	ParallelName string `json:"parallel_name"`
}

// IndexTable lists every (probe, parallel) pair that carries replicate data.
type IndexTable struct {
	Rows []ProbeKey `json:"rows"`
}

func (*IndexTable) TableID() TableID { return TableIndex }

// Len returns the number of rows.
func (t *IndexTable) Len() int { return len(t.Rows) }

// ProbeNames returns the probe_name column.
func (t *IndexTable) ProbeNames() []string {
	names := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		names[i] = row.ProbeName
	}
	return names
}

// ParallelNames returns the parallel_name column.
func (t *IndexTable) ParallelNames() []string {
	names := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		names[i] = row.ParallelName
	}
	return names
}

// SkippedProbe records a probe that was left out of the derived tables
// because it has no parallel measurements.
type SkippedProbe struct {
	Position  int    `json:"position"`
	ProbeName string `json:"probe_name"`
	Reason    string `json:"reason"`
}

// SkippedProbes is the list of probes excluded while reshaping a dump.
type SkippedProbes []SkippedProbe

func (SkippedProbes) TableID() TableID { return TableSkipped }
