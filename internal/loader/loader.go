// Package loader reads spectrometer dump files into dumps.
package loader

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"spectrumloader/internal/config"
	"spectrumloader/internal/dataprocessing"
	"spectrumloader/internal/dump"
	apperrors "spectrumloader/internal/errors"
	"spectrumloader/internal/infrastructure"
	"spectrumloader/pkg/contracts/domain"
)

// Recorder receives load and derivation measurements.
type Recorder interface {
	dataprocessing.Recorder
	ObserveLoad(elapsed time.Duration, err error)
}

// Loader builds dumps from pickle files.
type Loader struct {
	extension string
	verbose   bool
	logger    *slog.Logger
	recorder  Recorder
}

// Option configures a Loader.
type Option func(*Loader)

// WithVerbose makes parsers log skipped probes.
func WithVerbose(verbose bool) Option {
	return func(l *Loader) { l.verbose = verbose }
}

// WithLogger sets the logger passed down to parsers.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(l *Loader) { l.recorder = recorder }
}

// WithExtension changes the accepted file extension, ".pkl" by default.
func WithExtension(ext string) Option {
	return func(l *Loader) {
		if ext != "" {
			l.extension = ext
		}
	}
}

// New creates a loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		extension: config.DumpExtension,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = infrastructure.WithComponent(l.logger, "loader")
	return l
}

// Extension returns the accepted file extension.
func (l *Loader) Extension() string { return l.extension }

// Verbose reports whether dumps are created in verbose mode.
func (l *Loader) Verbose() bool { return l.verbose }

// Load reads the dump at path. A path without the loader's extension is
// rejected before the file is opened.
func (l *Loader) Load(ctx context.Context, path string) (d *dump.Dump, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "loader.Load", attribute.String("path", path))
	start := time.Now()
	defer func() {
		l.observe(ctx, path, time.Since(start), err)
		infrastructure.EndSpan(span, err)
	}()

	if !strings.HasSuffix(path, l.extension) {
		return nil, apperrors.NewFormatMismatchError(path, l.extension)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("cannot read dump", err).WithContext("path", path)
	}

	return l.decode(bytes.NewReader(content))
}

// Decode reads a dump from r without any extension check.
func (l *Loader) Decode(ctx context.Context, r io.Reader) (d *dump.Dump, err error) {
	_, span := infrastructure.StartSpan(ctx, "loader.Decode")
	defer func() { infrastructure.EndSpan(span, err) }()

	return l.decode(r)
}

func (l *Loader) decode(r io.Reader) (*dump.Dump, error) {
	data, err := decodeRecord(r)
	if err != nil {
		return nil, err
	}
	return l.FromRecord(data), nil
}

// FromRecord wraps an already decoded record.
func (l *Loader) FromRecord(data domain.RawRecord) *dump.Dump {
	opts := dataprocessing.Options{
		Verbose: l.verbose,
		Logger:  l.logger,
	}
	if l.recorder != nil {
		opts.Recorder = l.recorder
	}
	return dump.New(dataprocessing.NewParser(data, opts))
}

func (l *Loader) observe(ctx context.Context, path string, elapsed time.Duration, err error) {
	if l.recorder != nil {
		l.recorder.ObserveLoad(elapsed, err)
	}
	if err != nil {
		l.logger.WarnContext(ctx, "dump load failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}
	l.logger.InfoContext(ctx, "dump loaded",
		slog.String("path", path),
		slog.Duration("elapsed", elapsed))
}

// Load reads the dump at path with a loader built from opts.
func Load(ctx context.Context, path string, opts ...Option) (*dump.Dump, error) {
	return New(opts...).Load(ctx, path)
}
