package exporter

import (
	"encoding/json"
	"io"
)

// gridJSON is the wire form of a grid.
type gridJSON struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// MarshalJSON encodes missing cells as null.
func (g *Grid) MarshalJSON() ([]byte, error) {
	rows := g.Rows
	if rows == nil {
		rows = [][]Cell{}
	}
	return json.Marshal(gridJSON{Table: g.Name(), Columns: g.Header, Rows: rows})
}

// WriteJSON writes one grid as an object, several as an array.
func WriteJSON(w io.Writer, grids ...*Grid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(grids) == 1 {
		return enc.Encode(grids[0])
	}
	if grids == nil {
		grids = []*Grid{}
	}
	return enc.Encode(grids)
}
