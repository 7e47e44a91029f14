package dataprocessing

import (
	"math"

	"spectrumloader/pkg/contracts/domain"
)

// cellReader extracts one measurement value from a Column record.
type cellReader[T any] func(column record) (T, error)

// sparseFrame accumulates rows before they are laid out densely.
type sparseFrame[T any] struct {
	index   []domain.ProbeKey
	rows    []map[int]T
	columns []int
	seen    map[int]struct{}
}

func newSparseFrame[T any]() *sparseFrame[T] {
	return &sparseFrame[T]{seen: make(map[int]struct{})}
}

func (f *sparseFrame[T]) addRow(key domain.ProbeKey) int {
	f.index = append(f.index, key)
	f.rows = append(f.rows, make(map[int]T))
	return len(f.rows) - 1
}

// set stores a cell; a later write to the same cell wins.
func (f *sparseFrame[T]) set(row, id int, value T) {
	if _, ok := f.seen[id]; !ok {
		f.seen[id] = struct{}{}
		f.columns = append(f.columns, id)
	}
	f.rows[row][id] = value
}

// dense lays the frame out over the columns accepted by keep, in first
// appearance order. Absent cells hold missing and are marked invalid.
func (f *sparseFrame[T]) dense(keep func(id int) bool, missing T) domain.Frame[T] {
	columns := make([]int, 0, len(f.columns))
	for _, id := range f.columns {
		if keep(id) {
			columns = append(columns, id)
		}
	}

	out := domain.Frame[T]{
		Index:   f.index,
		Columns: columns,
		Values:  make([][]T, len(f.rows)),
		Valid:   make([][]bool, len(f.rows)),
	}
	if out.Index == nil {
		out.Index = []domain.ProbeKey{}
	}
	for i, row := range f.rows {
		values := make([]T, len(columns))
		valid := make([]bool, len(columns))
		for j, id := range columns {
			if v, ok := row[id]; ok {
				values[j], valid[j] = v, true
			} else {
				values[j] = missing
			}
		}
		out.Values[i], out.Valid[i] = values, valid
	}
	return out
}

// replicateFrame builds one row per distinct parallel name of each measured
// probe. Parallels repeating a name within a probe write into the same row.
// Columns unknown to the line table are dropped.
func replicateFrame[T any](p *Parser, read cellReader[T], missing T) (domain.Frame[T], error) {
	lines, err := p.Line()
	if err != nil {
		return domain.Frame[T]{}, err
	}
	part, err := p.partition()
	if err != nil {
		return domain.Frame[T]{}, err
	}

	frame := newSparseFrame[T]()
	for _, probe := range part.measured {
		rowOf := make(map[string]int, len(probe.parallels))
		for _, parallel := range probe.parallels {
			name, err := parallel.String("ParallelName")
			if err != nil {
				return domain.Frame[T]{}, err
			}
			row, ok := rowOf[name]
			if !ok {
				row = frame.addRow(domain.ProbeKey{ProbeName: probe.name, ParallelName: name})
				rowOf[name] = row
			}
			if err := readColumns(frame, row, parallel, read); err != nil {
				return domain.Frame[T]{}, err
			}
		}
	}
	return frame.dense(lines.Contains, missing), nil
}

func readColumns[T any](frame *sparseFrame[T], row int, parallel record, read cellReader[T]) error {
	columns, err := parallel.Records("Column")
	if err != nil {
		return err
	}
	for _, column := range columns {
		id, err := column.Int("ColumnID")
		if err != nil {
			return err
		}
		value, err := read(column)
		if err != nil {
			return err
		}
		frame.set(row, id, value)
	}
	return nil
}

func (p *Parser) parseIntensity() (*domain.IntensityTable, error) {
	frame, err := replicateFrame(p, readIntensity, math.NaN())
	if err != nil {
		return nil, err
	}
	return &domain.IntensityTable{Frame: frame}, nil
}

func (p *Parser) parseActive() (*domain.ActiveTable, error) {
	frame, err := replicateFrame(p, readActive, false)
	if err != nil {
		return nil, err
	}
	return &domain.ActiveTable{Frame: frame}, nil
}

func readIntensity(column record) (float64, error) {
	return column.Float("Intensity")
}

func readConcentration(column record) (float64, error) {
	return column.Float("Concentration")
}

func readActive(column record) (bool, error) {
	b, err := column.Bytes("Active")
	if err != nil {
		return false, err
	}
	return DecodeBool([][]byte{b})[0], nil
}
