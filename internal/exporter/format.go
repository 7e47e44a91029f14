package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatCSV, FormatJSON, FormatXLSX}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/plain; charset=utf-8"
}

// Extension returns the file extension of the format, with the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// Write encodes grids to w. CSV writes the grids one after another,
// separated by an empty line.
func Write(w io.Writer, format Format, grids ...*Grid) error {
	switch format {
	case FormatText:
		return WriteText(w, grids...)
	case FormatCSV:
		for i, g := range grids {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := NewCSVWriter().Write(w, g, WriteOptions{}); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return WriteJSON(w, grids...)
	case FormatXLSX:
		return WriteXLSX(w, grids...)
	}
	return fmt.Errorf("unknown format %q", format)
}

// formatCell renders a cell as text; missing is used for nil.
func formatCell(c Cell, missing string) string {
	switch v := c.(type) {
	case nil:
		return missing
	case string:
		return v
	case int:
		return formatInt(int64(v))
	case float64:
		return formatFloat(v)
	case bool:
		return formatBool(v)
	}
	return fmt.Sprint(c)
}

// formatFloat formats a float64 with the fewest digits that round-trip
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
