package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "spectrumloader/internal/errors"
	"spectrumloader/internal/infrastructure"
	"spectrumloader/pkg/contracts/domain"
)

// Recorder receives derivation measurements. infrastructure.Metrics
// implements it.
type Recorder interface {
	ObserveDerivation(table domain.TableID, elapsed time.Duration, err error)
	ObserveSkippedProbe()
}

// Options configures a Parser.
type Options struct {
	// Verbose logs one warning per probe skipped for lack of parallels.
	Verbose bool
	// Logger defaults to infrastructure.GetLogger().
	Logger *slog.Logger
	// Recorder is optional.
	Recorder Recorder
}

// lazy is a compute-once cell.
type lazy[T any] struct {
	once  sync.Once
	done  atomic.Bool
	value T
	err   error
}

func (c *lazy[T]) get(compute func() (T, error)) (T, error) {
	c.once.Do(func() {
		c.value, c.err = compute()
		c.done.Store(true)
	})
	return c.value, c.err
}

func (c *lazy[T]) computed() bool {
	return c.done.Load()
}

// Parser derives the tables of one raw dump. The record must not be
// modified after NewParser.
type Parser struct {
	data     domain.RawRecord
	root     record
	verbose  bool
	logger   *slog.Logger
	recorder Recorder

	filename      lazy[domain.Filename]
	filepath      lazy[domain.Filepath]
	line          lazy[*domain.LineTable]
	probes        lazy[*partition]
	index         lazy[*domain.IndexTable]
	intensity     lazy[*domain.IntensityTable]
	active        lazy[*domain.ActiveTable]
	concentration lazy[*domain.ConcentrationTable]
}

// NewParser creates a parser over data. Nothing is derived until asked for.
func NewParser(data domain.RawRecord, opts Options) *Parser {
	return &Parser{
		data:     data,
		root:     rootRecord(data),
		verbose:  opts.Verbose,
		logger:   infrastructure.WithComponent(opts.Logger, "parser"),
		recorder: opts.Recorder,
	}
}

// Data returns the raw record.
func (p *Parser) Data() domain.RawRecord { return p.data }

// Verbose reports whether skipped probes are logged.
func (p *Parser) Verbose() bool { return p.verbose }

// Get returns the table identified by id.
func (p *Parser) Get(id domain.TableID) (domain.Table, error) {
	switch id {
	case domain.TableFilename:
		return nilSafe(p.Filename())
	case domain.TableFilepath:
		return nilSafe(p.Filepath())
	case domain.TableLine:
		return nilSafe(p.Line())
	case domain.TableIndex:
		return nilSafe(p.Index())
	case domain.TableIntensity:
		return nilSafe(p.Intensity())
	case domain.TableActive:
		return nilSafe(p.Active())
	case domain.TableConcentration:
		return nilSafe(p.Concentration())
	case domain.TableSkipped:
		return nilSafe(p.Skipped())
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("parser table %s", id))
}

// GetContext is Get inside a tracing span.
func (p *Parser) GetContext(ctx context.Context, id domain.TableID) (domain.Table, error) {
	_, span := infrastructure.StartSpan(ctx, "dataprocessing.Get",
		attribute.String("table", id.String()),
		attribute.Bool("cached", p.Computed(id)),
	)
	table, err := p.Get(id)
	infrastructure.EndSpan(span, err)
	return table, err
}

// nilSafe returns a nil Table on error.
func nilSafe[T domain.Table](table T, err error) (domain.Table, error) {
	if err != nil {
		return nil, err
	}
	return table, nil
}

// Computed reports whether the table has already been derived.
func (p *Parser) Computed(id domain.TableID) bool {
	switch id {
	case domain.TableFilename:
		return p.filename.computed()
	case domain.TableFilepath:
		return p.filepath.computed()
	case domain.TableLine:
		return p.line.computed()
	case domain.TableIndex:
		return p.index.computed()
	case domain.TableIntensity:
		return p.intensity.computed()
	case domain.TableActive:
		return p.active.computed()
	case domain.TableConcentration:
		return p.concentration.computed()
	case domain.TableSkipped:
		return p.probes.computed()
	}
	return false
}

// Filename returns the stem of the stored path.
func (p *Parser) Filename() (domain.Filename, error) {
	return p.filename.get(func() (domain.Filename, error) {
		return derive(p, domain.TableFilename, p.parseFilename)
	})
}

// Filepath returns the stored path.
func (p *Parser) Filepath() (domain.Filepath, error) {
	return p.filepath.get(func() (domain.Filepath, error) {
		return derive(p, domain.TableFilepath, p.parseFilepath)
	})
}

// Line returns the line definitions.
func (p *Parser) Line() (*domain.LineTable, error) {
	return p.line.get(func() (*domain.LineTable, error) {
		return derive(p, domain.TableLine, p.parseLine)
	})
}

// Index returns one row per (probe, parallel) pair.
func (p *Parser) Index() (*domain.IndexTable, error) {
	return p.index.get(func() (*domain.IndexTable, error) {
		return derive(p, domain.TableIndex, p.parseIndex)
	})
}

// Intensity returns the per-replicate intensities.
func (p *Parser) Intensity() (*domain.IntensityTable, error) {
	return p.intensity.get(func() (*domain.IntensityTable, error) {
		return derive(p, domain.TableIntensity, p.parseIntensity)
	})
}

// Active returns the per-replicate activity flags.
func (p *Parser) Active() (*domain.ActiveTable, error) {
	return p.active.get(func() (*domain.ActiveTable, error) {
		return derive(p, domain.TableActive, p.parseActive)
	})
}

// Concentration returns the per-probe element concentrations.
func (p *Parser) Concentration() (*domain.ConcentrationTable, error) {
	return p.concentration.get(func() (*domain.ConcentrationTable, error) {
		return derive(p, domain.TableConcentration, p.parseConcentration)
	})
}

// Skipped returns the probes left out for lack of parallels.
func (p *Parser) Skipped() (domain.SkippedProbes, error) {
	part, err := p.partition()
	if err != nil {
		return nil, err
	}
	return part.skipped, nil
}

// derive runs one derivation and reports it.
func derive[T any](p *Parser, id domain.TableID, fn func() (T, error)) (T, error) {
	start := time.Now()
	value, err := fn()
	elapsed := time.Since(start)

	if p.recorder != nil {
		p.recorder.ObserveDerivation(id, elapsed, err)
	}
	if err != nil {
		p.logger.Debug("table derivation failed",
			slog.String("table", id.String()),
			slog.String("error", err.Error()))
	} else {
		p.logger.Debug("table derived",
			slog.String("table", id.String()),
			slog.Duration("elapsed", elapsed))
	}
	return value, err
}
