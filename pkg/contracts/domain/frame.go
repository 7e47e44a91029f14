package domain

// Frame is a dense probe-by-line matrix. Rows are replicate measurements,
// columns are line ids. Valid marks the cells actually present in the dump;
// an invalid cell holds the zero value of T, or NaN for float frames.
type Frame[T any] struct {
	Index   []ProbeKey
	Columns []int
	Values  [][]T
	Valid   [][]bool
}

// NumRows returns the number of replicate rows.
func (f *Frame[T]) NumRows() int { return len(f.Index) }

// NumCols returns the number of line columns.
func (f *Frame[T]) NumCols() int { return len(f.Columns) }

// At returns the cell at row i, column j and whether it holds data.
func (f *Frame[T]) At(i, j int) (T, bool) {
	return f.Values[i][j], f.Valid[i][j]
}

// ColumnIndex returns the position of the column for line id.
func (f *Frame[T]) ColumnIndex(id int) (int, bool) {
	for j, c := range f.Columns {
		if c == id {
			return j, true
		}
	}
	return 0, false
}

// Lookup returns the cell for the first row keyed by key and line id.
func (f *Frame[T]) Lookup(key ProbeKey, id int) (T, bool) {
	var zero T
	j, ok := f.ColumnIndex(id)
	if !ok {
		return zero, false
	}
	for i, k := range f.Index {
		if k == key {
			return f.At(i, j)
		}
	}
	return zero, false
}

// IntensityTable holds the measured line intensities per replicate.
type IntensityTable struct {
	Frame[float64]
}

func (*IntensityTable) TableID() TableID { return TableIntensity }

// ActiveTable holds the per-replicate line activity mask.
type ActiveTable struct {
	Frame[bool]
}

func (*ActiveTable) TableID() TableID { return TableActive }

// ConcentrationTable holds one concentration row per probe and one column
// per chemical element. LineIDs records which line each column was taken from;
// it is -1 for an element that no measurement referenced.
type ConcentrationTable struct {
	Index   []string
	Columns []string
	LineIDs []int
	Values  [][]float64
	Valid   [][]bool
}

func (*ConcentrationTable) TableID() TableID { return TableConcentration }

// NumRows returns the number of probes.
func (t *ConcentrationTable) NumRows() int { return len(t.Index) }

// NumCols returns the number of elements.
func (t *ConcentrationTable) NumCols() int { return len(t.Columns) }

// At returns the cell at row i, column j and whether it holds data.
func (t *ConcentrationTable) At(i, j int) (float64, bool) {
	return t.Values[i][j], t.Valid[i][j]
}

// Lookup returns the concentration of symbol in the first row for probe.
func (t *ConcentrationTable) Lookup(probe, symbol string) (float64, bool) {
	for j, c := range t.Columns {
		if c != symbol {
			continue
		}
		for i, p := range t.Index {
			if p == probe {
				return t.At(i, j)
			}
		}
	}
	return 0, false
}
