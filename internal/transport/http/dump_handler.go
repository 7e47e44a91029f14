package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "spectrumloader/internal/errors"
	"spectrumloader/internal/exporter"
	"spectrumloader/internal/infrastructure"
	"spectrumloader/internal/services"
)

// DumpHandler serves the dump catalog and its tables
type DumpHandler struct {
	service      DumpServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// DumpListResponse is the body of GET /api/dumps
type DumpListResponse struct {
	Dumps []services.DumpSummary `json:"dumps"`
	Count int                    `json:"count"`
}

// NewDumpHandler creates a new dump handler
func NewDumpHandler(service DumpServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DumpHandler {
	return &DumpHandler{
		service:      service,
		logger:       infrastructure.WithComponent(logger, "dump_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the dump routes
func (h *DumpHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListDumps)
	r.Route("/{name}", func(r chi.Router) {
		r.Use(h.DumpCtx)
		r.Get("/", h.GetDump)
		r.Get("/tables/{table}", h.GetTable)
	})

	return r
}

// DumpCtx rejects requests without a dump name
func (h *DumpHandler) DumpCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(chi.URLParam(r, "name")) == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Dump name is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListDumps handles GET /api/dumps
func (h *DumpHandler) ListDumps(w http.ResponseWriter, r *http.Request) {
	dumps, err := h.service.List(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, DumpListResponse{Dumps: dumps, Count: len(dumps)})
}

// GetDump handles GET /api/dumps/{name}
func (h *DumpHandler) GetDump(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Describe(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, detail)
}

// GetTable handles GET /api/dumps/{name}/tables/{table}
func (h *DumpHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	name, tableName := chi.URLParam(r, "name"), chi.URLParam(r, "table")

	format := exporter.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := exporter.ParseFormat(f)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format",
				fmt.Sprintf("Unsupported format %q", f)))
			return
		}
		format = parsed
	}

	table, err := h.service.Table(r.Context(), name, tableName)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	grid, err := exporter.ToGrid(table)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format == exporter.FormatCSV || format == exporter.FormatXLSX {
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s_%s%s"`, name, grid.Name(), format.Extension()))
	}
	if err := exporter.Write(w, format, grid); err != nil {
		// headers are gone by now
		h.logger.ErrorContext(r.Context(), "Failed to write table",
			slog.String("dump", name),
			slog.String("table", tableName),
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
	}
}
