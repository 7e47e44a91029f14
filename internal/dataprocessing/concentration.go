package dataprocessing

import (
	"math"

	"spectrumloader/pkg/contracts/domain"
)

// parseConcentration builds one row per measured probe from its first
// parallel only; replicates of a probe share the concentration. Columns are
// relabelled from line id to element symbol, keeping the first column found
// for each element.
func (p *Parser) parseConcentration() (*domain.ConcentrationTable, error) {
	lines, err := p.Line()
	if err != nil {
		return nil, err
	}
	part, err := p.partition()
	if err != nil {
		return nil, err
	}

	frame := newSparseFrame[float64]()
	for _, probe := range part.measured {
		row := frame.addRow(domain.ProbeKey{ProbeName: probe.name})
		if err := readColumns(frame, row, probe.parallels[0], readConcentration); err != nil {
			return nil, err
		}
	}
	byID := frame.dense(lines.Contains, math.NaN())

	// first frame column per symbol
	source := make(map[string]int)
	for j, id := range byID.Columns {
		line, _ := lines.Lookup(id)
		if _, ok := source[line.Symbol]; !ok {
			source[line.Symbol] = j
		}
	}

	symbols := lines.Symbols()
	table := &domain.ConcentrationTable{
		Index:   make([]string, byID.NumRows()),
		Columns: symbols,
		LineIDs: make([]int, len(symbols)),
		Values:  make([][]float64, byID.NumRows()),
		Valid:   make([][]bool, byID.NumRows()),
	}
	if table.Columns == nil {
		table.Columns = []string{}
	}
	for k, symbol := range symbols {
		table.LineIDs[k] = -1
		if j, ok := source[symbol]; ok {
			table.LineIDs[k] = byID.Columns[j]
		}
	}
	for i, key := range byID.Index {
		table.Index[i] = key.ProbeName
		values := make([]float64, len(symbols))
		valid := make([]bool, len(symbols))
		for k, symbol := range symbols {
			j, ok := source[symbol]
			if !ok {
				values[k] = math.NaN()
				continue
			}
			values[k], valid[k] = byID.At(i, j)
		}
		table.Values[i], table.Valid[i] = values, valid
	}
	return table, nil
}
