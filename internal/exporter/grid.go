package exporter

import (
	"fmt"
	"math"
	"strconv"

	"spectrumloader/pkg/contracts/domain"
)

// Cell is one grid value: nil, string, int, float64 or bool.
type Cell = any

// Grid is a table flattened to a header and rows.
type Grid struct {
	Table  domain.TableID
	Header []string
	Rows   [][]Cell
}

// Name returns the table name.
func (g *Grid) Name() string { return g.Table.String() }

// ToGrid flattens any derived table.
func ToGrid(table domain.Table) (*Grid, error) {
	switch t := table.(type) {
	case domain.Filename:
		return &Grid{Table: domain.TableFilename, Header: []string{"filename"}, Rows: [][]Cell{{string(t)}}}, nil
	case domain.Filepath:
		return &Grid{Table: domain.TableFilepath, Header: []string{"filepath"}, Rows: [][]Cell{{string(t)}}}, nil
	case *domain.LineTable:
		return lineGrid(t), nil
	case *domain.IndexTable:
		return indexGrid(t), nil
	case *domain.IntensityTable:
		return frameGrid(domain.TableIntensity, &t.Frame, floatCell), nil
	case *domain.ActiveTable:
		return frameGrid(domain.TableActive, &t.Frame, func(b bool) Cell { return b }), nil
	case *domain.ConcentrationTable:
		return concentrationGrid(t), nil
	case domain.SkippedProbes:
		return skippedGrid(t), nil
	case nil:
		return nil, fmt.Errorf("no table to export")
	}
	return nil, fmt.Errorf("cannot export table of type %T", table)
}

func lineGrid(t *domain.LineTable) *Grid {
	g := &Grid{
		Table: domain.TableLine,
		Header: []string{
			"id", "symbol", "wavelength", "nickname",
			"database_intensity", "database_ionization_degree", "is_active",
		},
		Rows: make([][]Cell, len(t.Rows)),
	}
	for i, l := range t.Rows {
		g.Rows[i] = []Cell{
			l.ID, l.Symbol, l.Wavelength, l.Nickname,
			floatCell(l.DatabaseIntensity), degreeCell(l.DatabaseIonizationDegree), l.IsActive,
		}
	}
	return g
}

func indexGrid(t *domain.IndexTable) *Grid {
	g := &Grid{
		Table:  domain.TableIndex,
		Header: []string{"probe_name", "parallel_name"},
		Rows:   make([][]Cell, len(t.Rows)),
	}
	for i, k := range t.Rows {
		g.Rows[i] = []Cell{k.ProbeName, k.ParallelName}
	}
	return g
}

func frameGrid[T any](id domain.TableID, f *domain.Frame[T], cell func(T) Cell) *Grid {
	header := []string{"probe_name", "parallel_name"}
	for _, c := range f.Columns {
		header = append(header, strconv.Itoa(c))
	}
	g := &Grid{Table: id, Header: header, Rows: make([][]Cell, f.NumRows())}
	for i, key := range f.Index {
		row := []Cell{key.ProbeName, key.ParallelName}
		for j := range f.Columns {
			v, ok := f.At(i, j)
			if !ok {
				row = append(row, nil)
				continue
			}
			row = append(row, cell(v))
		}
		g.Rows[i] = row
	}
	return g
}

func concentrationGrid(t *domain.ConcentrationTable) *Grid {
	header := append([]string{"probe_name"}, t.Columns...)
	g := &Grid{Table: domain.TableConcentration, Header: header, Rows: make([][]Cell, t.NumRows())}
	for i, probe := range t.Index {
		row := []Cell{probe}
		for j := range t.Columns {
			v, ok := t.At(i, j)
			if !ok {
				row = append(row, nil)
				continue
			}
			row = append(row, floatCell(v))
		}
		g.Rows[i] = row
	}
	return g
}

func skippedGrid(t domain.SkippedProbes) *Grid {
	g := &Grid{
		Table:  domain.TableSkipped,
		Header: []string{"position", "probe_name", "reason"},
		Rows:   make([][]Cell, len(t)),
	}
	for i, s := range t {
		g.Rows[i] = []Cell{s.Position, s.ProbeName, s.Reason}
	}
	return g
}

func floatCell(v float64) Cell {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// degreeCell keeps ionization degrees integral.
func degreeCell(v float64) Cell {
	if math.IsNaN(v) {
		return nil
	}
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return int(v)
	}
	return v
}
