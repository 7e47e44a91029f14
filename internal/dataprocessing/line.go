package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "spectrumloader/internal/errors"
	"spectrumloader/pkg/contracts/domain"
)

// Sentinels the dumper writes for unknown database values.
const (
	missingDatabaseIntensity        = -1
	missingDatabaseIonizationDegree = 0
)

func (p *Parser) parseFilepath() (domain.Filepath, error) {
	path, err := p.root.String("Filename")
	if err != nil {
		return "", err
	}
	return domain.Filepath(path), nil
}

func (p *Parser) parseFilename() (domain.Filename, error) {
	path, err := p.root.String("Filename")
	if err != nil {
		return "", err
	}
	return domain.Filename(stem(path)), nil
}

// stem returns the last path element without its extension. Both separators
// are accepted since dumps are written on Windows.
func stem(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	// a leading dot starts a name, not an extension
	if i := strings.LastIndexByte(path, '.'); i > 0 && strings.TrimLeft(path[:i], ".") != "" {
		path = path[:i]
	}
	return path
}

func (p *Parser) parseLine() (*domain.LineTable, error) {
	sections, err := p.root.Records("Columns")
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, apperrors.NewMissingFieldError("Columns[0]")
	}
	defs, err := sections[0].Records("Column")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Line, 0, len(defs))
	seen := make(map[int]struct{}, len(defs))
	for _, def := range defs {
		row, err := lineRow(def)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[row.ID]; dup {
			return nil, apperrors.NewMalformedFieldError(def.child("ColumnID"), "unique line id", row.ID)
		}
		seen[row.ID] = struct{}{}
		rows = append(rows, row)
	}

	// sentinels are masked by value once the columns are complete
	for i := range rows {
		if rows[i].DatabaseIntensity == missingDatabaseIntensity {
			rows[i].DatabaseIntensity = math.NaN()
		}
		if rows[i].DatabaseIonizationDegree == missingDatabaseIonizationDegree {
			rows[i].DatabaseIonizationDegree = math.NaN()
		}
	}

	return domain.NewLineTable(rows), nil
}

func lineRow(def record) (domain.Line, error) {
	id, err := def.Int("ColumnID")
	if err != nil {
		return domain.Line{}, err
	}
	symbol, err := def.String("ElementShortName")
	if err != nil {
		return domain.Line{}, err
	}
	wavelength, err := def.Float("Wavelength")
	if err != nil {
		return domain.Line{}, err
	}
	intensity, err := def.Float("DatabaseIntensity")
	if err != nil {
		return domain.Line{}, err
	}
	degree, err := def.Float("DatabaseIonizationDegree")
	if err != nil {
		return domain.Line{}, err
	}

	return domain.Line{
		ID:                       id,
		Symbol:                   symbol,
		Wavelength:               wavelength,
		Nickname:                 fmt.Sprintf("%s %s", symbol, formatNumber(def.fields["Wavelength"], wavelength)),
		DatabaseIntensity:        intensity,
		DatabaseIonizationDegree: degree,
		IsActive:                 false,
	}, nil
}

// formatNumber prints an integer as an integer and anything else as a float.
func formatNumber(raw any, v float64) string {
	switch raw.(type) {
	case float64, float32:
		return formatFloat(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFloat prints v the way the dumper's host language prints a float:
// shortest round-trip digits, always with a fractional part or an exponent.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
