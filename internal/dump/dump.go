// Package dump is the read-only face of a loaded spectrometer dump.
package dump

import (
	"context"
	"fmt"

	"spectrumloader/internal/dataprocessing"
	apperrors "spectrumloader/internal/errors"
	"spectrumloader/pkg/contracts/domain"
)

// Dump exposes the tables of one dump. It holds no state of its own; every
// table comes from the parser and is cached there.
type Dump struct {
	parser *dataprocessing.Parser
}

// New wraps parser.
func New(parser *dataprocessing.Parser) *Dump {
	return &Dump{parser: parser}
}

// Parser returns the underlying parser.
func (d *Dump) Parser() *dataprocessing.Parser { return d.parser }

// Get returns the table identified by id.
func (d *Dump) Get(id domain.TableID) (domain.Table, error) {
	table, err := d.parser.Get(id)
	return table, d.translate(id.String(), err)
}

// GetContext is Get traced under ctx.
func (d *Dump) GetContext(ctx context.Context, id domain.TableID) (domain.Table, error) {
	table, err := d.parser.GetContext(ctx, id)
	return table, d.translate(id.String(), err)
}

// Lookup returns the table with the given name, e.g. "intensity".
func (d *Dump) Lookup(name string) (domain.Table, error) {
	id, ok := domain.ParseTableID(name)
	if !ok {
		return nil, notFound(name)
	}
	table, err := d.parser.Get(id)
	return table, d.translate(name, err)
}

// translate replaces the parser's not-found error with the dump's own.
func (d *Dump) translate(name string, err error) error {
	if err != nil && apperrors.IsType(err, apperrors.ErrTypeNotFound) {
		return notFound(name)
	}
	return err
}

func notFound(name string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("table %q", name)).
		WithContext("table", name)
}

// Filename returns the stem of the dumped file's name.
func (d *Dump) Filename() (domain.Filename, error) { return d.parser.Filename() }

// Filepath returns the dumped file's path as stored.
func (d *Dump) Filepath() (domain.Filepath, error) { return d.parser.Filepath() }

// Line returns the line definitions.
func (d *Dump) Line() (*domain.LineTable, error) { return d.parser.Line() }

// Index returns the (probe, parallel) pairs.
func (d *Dump) Index() (*domain.IndexTable, error) { return d.parser.Index() }

// Intensity returns the intensity frame.
func (d *Dump) Intensity() (*domain.IntensityTable, error) { return d.parser.Intensity() }

// Active returns the activity frame.
func (d *Dump) Active() (*domain.ActiveTable, error) { return d.parser.Active() }

// Concentration returns the concentration table.
func (d *Dump) Concentration() (*domain.ConcentrationTable, error) {
	return d.parser.Concentration()
}

// Skipped returns the probes without parallels.
func (d *Dump) Skipped() (domain.SkippedProbes, error) { return d.parser.Skipped() }
