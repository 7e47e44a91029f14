package services

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"spectrumloader/internal/dump"
	apperrors "spectrumloader/internal/errors"
	"spectrumloader/internal/files"
	"spectrumloader/internal/infrastructure"
	"spectrumloader/pkg/contracts/domain"
)

// DumpLoader reads one dump file. *loader.Loader implements it.
type DumpLoader interface {
	Load(ctx context.Context, path string) (*dump.Dump, error)
	Extension() string
}

// DumpSummary describes one dump file of the catalog.
type DumpSummary struct {
	Name     string    `json:"name"`
	File     string    `json:"file"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Loaded   bool      `json:"loaded"`
}

// TableStatus tells whether a table of a loaded dump has been derived yet.
type TableStatus struct {
	Name     string `json:"name"`
	Computed bool   `json:"computed"`
}

// DumpDetail describes a loaded dump.
type DumpDetail struct {
	DumpSummary
	ID       string        `json:"id"`
	Filename string        `json:"filename"`
	Filepath string        `json:"filepath"`
	Tables   []TableStatus `json:"tables"`
}

// catalogEntry is one cached load. id names the load, so a reload after the
// file changed gets a new one.
type catalogEntry struct {
	id       string
	dump     *dump.Dump
	size     int64
	modified time.Time
}

// DumpService serves the dumps of one directory.
type DumpService struct {
	dir       string
	discovery *files.Discovery
	loader    DumpLoader
	logger    *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]*catalogEntry
}

// NewDumpService creates a catalog over dir.
func NewDumpService(dir string, loader DumpLoader, logger *slog.Logger) *DumpService {
	logger = infrastructure.WithComponent(logger, "dump_service")
	logger.Info("DumpService initialized",
		slog.String("dump_dir", dir),
		slog.String("extension", loader.Extension()))

	return &DumpService{
		dir:       dir,
		discovery: files.NewDiscovery(dir),
		loader:    loader,
		logger:    logger,
		cache:     make(map[string]*catalogEntry),
	}
}

// Dir returns the catalog directory.
func (s *DumpService) Dir() string { return s.dir }

// List returns every dump file of the directory, sorted by name.
func (s *DumpService) List(ctx context.Context) ([]DumpSummary, error) {
	found, err := s.discovery.FindDumpFiles(".", s.loader.Extension())
	if err != nil {
		return nil, apperrors.NewStorageError("cannot list dumps", err).WithContext("dir", s.dir)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]DumpSummary, 0, len(found))
	for _, f := range found {
		entry, ok := s.cache[f.Stem()]
		summaries = append(summaries, DumpSummary{
			Name:     f.Stem(),
			File:     f.Name,
			Size:     f.Size,
			Modified: f.ModTime,
			Loaded:   ok && entry.fresh(f.Size, f.ModTime),
		})
	}

	s.logger.DebugContext(ctx, "dumps listed", slog.Int("count", len(summaries)))
	return summaries, nil
}

// Get returns the dump called name, loading it if it is not cached or its
// file changed since it was loaded.
func (s *DumpService) Get(ctx context.Context, name string) (*dump.Dump, error) {
	if err := validateDumpName(name); err != nil {
		return nil, err
	}
	path := s.path(name)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dumpNotFound(name)
		}
		return nil, apperrors.NewStorageError("cannot stat dump", err).WithContext("path", path)
	}
	if info.IsDir() {
		return nil, dumpNotFound(name)
	}

	if d, ok := s.cached(name, info); ok {
		return d, nil
	}

	v, err, shared := s.group.Do(name, func() (interface{}, error) {
		// a flight that finished after our first check may have filled the cache
		if d, ok := s.cached(name, info); ok {
			return d, nil
		}
		d, err := s.loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		entry := &catalogEntry{
			id:       infrastructure.GenerateTraceID(),
			dump:     d,
			size:     info.Size(),
			modified: info.ModTime(),
		}
		s.mu.Lock()
		s.cache[name] = entry
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "dump cached",
			slog.String("dump", name),
			slog.String("dump_id", entry.id))
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "dump load shared", slog.String("dump", name))
	}
	return v.(*dump.Dump), nil
}

// Describe returns the summary of a dump together with the ID of its cached
// load and the derivation state of each table.
func (s *DumpService) Describe(ctx context.Context, name string) (*DumpDetail, error) {
	d, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	filename, err := d.Filename()
	if err != nil {
		return nil, err
	}
	path, err := d.Filepath()
	if err != nil {
		return nil, err
	}

	detail := &DumpDetail{
		Filename: string(filename),
		Filepath: string(path),
	}
	s.mu.RLock()
	if entry, ok := s.cache[name]; ok && entry.dump == d {
		detail.ID = entry.id
		detail.DumpSummary = DumpSummary{
			Name:     name,
			File:     filepath.Base(s.path(name)),
			Size:     entry.size,
			Modified: entry.modified,
			Loaded:   true,
		}
	}
	s.mu.RUnlock()

	for _, id := range domain.TableIDs() {
		detail.Tables = append(detail.Tables, TableStatus{
			Name:     id.String(),
			Computed: d.Parser().Computed(id),
		})
	}
	return detail, nil
}

// Table returns one table of a dump by table name.
func (s *DumpService) Table(ctx context.Context, name, table string) (t domain.Table, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "services.DumpService.Table",
		attribute.String("dump", name),
		attribute.String("table", table))
	defer func() { infrastructure.EndSpan(span, err) }()

	d, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	id, ok := domain.ParseTableID(table)
	if !ok {
		return d.Lookup(table)
	}
	return d.GetContext(ctx, id)
}

// Evict drops a dump from the cache. It reports whether it was cached.
func (s *DumpService) Evict(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cache[name]
	delete(s.cache, name)
	return ok
}

func (s *DumpService) cached(name string, info fs.FileInfo) (*dump.Dump, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[name]
	if !ok || !entry.fresh(info.Size(), info.ModTime()) {
		return nil, false
	}
	return entry.dump, true
}

func (s *DumpService) path(name string) string {
	return filepath.Join(s.dir, name+s.loader.Extension())
}

func (e *catalogEntry) fresh(size int64, modified time.Time) bool {
	return e.size == size && e.modified.Equal(modified)
}
