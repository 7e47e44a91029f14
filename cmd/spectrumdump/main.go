// Command spectrumdump loads one spectrometer dump and prints or exports
// its tables.
//
//	spectrumdump -file run.pkl
//	spectrumdump -file run.pkl -tables concentration,skipped -format csv -out reports/
//	spectrumdump -file run.pkl -tables all -format xlsx -out run.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spectrumloader/internal/config"
	"spectrumloader/internal/exporter"
	"spectrumloader/internal/files"
	"spectrumloader/internal/infrastructure"
	"spectrumloader/internal/loader"
	"spectrumloader/internal/validation"
	"spectrumloader/pkg/contracts"
	"spectrumloader/pkg/contracts/domain"
)

// options are the parsed command line flags
type options struct {
	file    string
	tables  []domain.TableID
	format  exporter.Format
	out     string
	verbose bool
}

func main() {
	opts, showVersion, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	logger, err := infrastructure.NewLogger(cliLogging())
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(context.Background(), opts, os.Stdout, logger); err != nil {
		logger.Error("spectrumdump failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// cliLogging keeps stderr to warnings and errors; -verbose adds the skipped
// probe warnings through the loader, not through the level.
func cliLogging() config.LoggingConfig {
	return config.LoggingConfig{Level: "warn", Format: "text", Output: "console"}
}

func parseFlags(args []string, stderr io.Writer) (options, bool, error) {
	fs := flag.NewFlagSet("spectrumdump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	file := fs.String("file", "", "dump file to load (required)")
	tables := fs.String("tables", "line,active", "comma separated tables to print, or \"all\"")
	format := fs.String("format", string(exporter.FormatText), "output format: "+formatList())
	out := fs.String("out", "", "output directory, or workbook path for xlsx (default stdout)")
	verbose := fs.Bool("verbose", false, "log one line per skipped probe")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, false, err
	}
	if *version {
		return options{}, true, nil
	}

	opts := options{file: *file, out: *out, verbose: *verbose}
	var err error
	if opts.file == "" {
		err = fmt.Errorf("-file is required")
	} else if opts.tables, err = parseTables(*tables); err == nil {
		opts.format, err = exporter.ParseFormat(*format)
	}
	if err == nil && opts.format == exporter.FormatXLSX && opts.out == "" {
		err = fmt.Errorf("xlsx output requires -out")
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return options{}, false, err
	}
	return opts, false, nil
}

func parseTables(list string) ([]domain.TableID, error) {
	if strings.EqualFold(strings.TrimSpace(list), "all") {
		return domain.TableIDs(), nil
	}

	var ids []domain.TableID
	seen := make(map[domain.TableID]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, ok := domain.ParseTableID(name)
		if !ok {
			return nil, fmt.Errorf("unknown table %q", name)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no tables requested")
	}
	return ids, nil
}

func formatList() string {
	names := make([]string, 0, len(exporter.Formats()))
	for _, f := range exporter.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

func run(ctx context.Context, opts options, stdout io.Writer, logger *slog.Logger) error {
	ctx = infrastructure.EnsureTraceID(ctx)
	l := loader.New(loader.WithLogger(logger), loader.WithVerbose(opts.verbose))
	validator := validation.NewFileValidator(logger)

	if err := validator.ValidateDumpFile(opts.file, l.Extension()); err != nil {
		return err
	}
	if opts.out != "" {
		dir := opts.out
		if opts.format == exporter.FormatXLSX {
			dir = filepath.Dir(opts.out)
		}
		if err := validator.ValidateOutputDirectory(dir); err != nil {
			return err
		}
	}

	d, err := l.Load(ctx, opts.file)
	if err != nil {
		return err
	}

	grids := make([]*exporter.Grid, 0, len(opts.tables))
	for _, id := range opts.tables {
		table, err := d.GetContext(ctx, id)
		if err != nil {
			return err
		}
		grid, err := exporter.ToGrid(table)
		if err != nil {
			return err
		}
		grids = append(grids, grid)
	}

	if opts.out == "" {
		return exporter.Write(stdout, opts.format, grids...)
	}

	manager := files.NewManager("", logger)
	if opts.format == exporter.FormatXLSX {
		return writeTo(manager, opts.out, opts.format, grids...)
	}
	for _, grid := range grids {
		path := filepath.Join(opts.out, grid.Name()+opts.format.Extension())
		if err := writeTo(manager, path, opts.format, grid); err != nil {
			return err
		}
	}
	return nil
}

func writeTo(manager *files.Manager, path string, format exporter.Format, grids ...*exporter.Grid) (err error) {
	f, err := manager.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return exporter.Write(f, format, grids...)
}
