package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"spectrumloader/internal/infrastructure"
)

// utf8BOM helps Excel recognize UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter() *CSVWriter {
	return NewCSVWriterWithLogger(infrastructure.GetLogger())
}

// NewCSVWriterWithLogger creates a CSV writer that logs to logger
func NewCSVWriterWithLogger(logger *slog.Logger) *CSVWriter {
	return &CSVWriter{logger: infrastructure.WithComponent(logger, "csv_writer")}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool   // Add UTF-8 BOM for Excel compatibility
	Missing   string // Text written for missing cells, empty by default
	Comma     rune   // Field delimiter, ',' by default
}

// Write writes the grid with a header row
func (w *CSVWriter) Write(out io.Writer, g *Grid, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if options.Comma != 0 {
		writer.Comma = options.Comma
	}

	if err := writer.Write(g.Header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(g.Header))
	for i, row := range g.Rows {
		for j, c := range row {
			record[j] = formatCell(c, options.Missing)
		}
		if err := writer.Write(record[:len(row)]); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the grid to filePath, creating parent directories
func (w *CSVWriter) WriteFile(filePath string, g *Grid, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("table", g.Name()),
		slog.Int("record_count", len(g.Rows)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := w.Write(file, g, options); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
