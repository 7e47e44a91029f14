package domain

// Line is one spectral line definition of the instrument's line table.
//
// DatabaseIntensity is NaN when the dump carries no reference intensity.
// DatabaseIonizationDegree holds an integer, or NaN when the degree is unknown.
type Line struct {
	ID                       int     `json:"id"`
	Symbol                   string  `json:"symbol"`
	Wavelength               float64 `json:"wavelength"`
	Nickname                 string  `json:"nickname"`
	DatabaseIntensity        float64 `json:"database_intensity"`
	DatabaseIonizationDegree float64 `json:"database_ionization_degree"`
	IsActive                 bool    `json:"is_active"`
}

// LineTable holds the line definitions in dump order, indexed by line id.
type LineTable struct {
	Rows []Line

	position map[int]int
}

// NewLineTable indexes rows by id. Ids must be unique; the caller checks.
func NewLineTable(rows []Line) *LineTable {
	position := make(map[int]int, len(rows))
	for i, row := range rows {
		position[row.ID] = i
	}
	return &LineTable{Rows: rows, position: position}
}

func (*LineTable) TableID() TableID { return TableLine }

// Len returns the number of lines.
func (t *LineTable) Len() int { return len(t.Rows) }

// Contains reports whether id is a known line id.
func (t *LineTable) Contains(id int) bool {
	_, ok := t.position[id]
	return ok
}

// Lookup returns the line with the given id.
func (t *LineTable) Lookup(id int) (Line, bool) {
	i, ok := t.position[id]
	if !ok {
		return Line{}, false
	}
	return t.Rows[i], true
}

// IDs returns the id column in dump order.
func (t *LineTable) IDs() []int {
	ids := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		ids[i] = row.ID
	}
	return ids
}

// Symbols returns the distinct chemical symbols in first-occurrence order.
func (t *LineTable) Symbols() []string {
	seen := make(map[string]struct{}, len(t.Rows))
	var symbols []string
	for _, row := range t.Rows {
		if _, ok := seen[row.Symbol]; ok {
			continue
		}
		seen[row.Symbol] = struct{}{}
		symbols = append(symbols, row.Symbol)
	}
	return symbols
}
