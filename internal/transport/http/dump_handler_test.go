package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "spectrumloader/internal/errors"
	"spectrumloader/internal/loader"
	"spectrumloader/internal/services"
	"spectrumloader/internal/shared/testutil"
	"spectrumloader/pkg/contracts/domain"
)

// MockDumpService is a mock implementation of DumpServiceInterface
type MockDumpService struct {
	mock.Mock
}

func (m *MockDumpService) List(ctx context.Context) ([]services.DumpSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.DumpSummary), args.Error(1)
}

func (m *MockDumpService) Describe(ctx context.Context, name string) (*services.DumpDetail, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DumpDetail), args.Error(1)
}

func (m *MockDumpService) Table(ctx context.Context, name, table string) (domain.Table, error) {
	args := m.Called(name, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Table), args.Error(1)
}

func newTestRouter(t *testing.T, service DumpServiceInterface) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	handler := NewDumpHandler(service, logger, apierrors.NewErrorHandler(logger, false))
	r := chi.NewRouter()
	r.Mount("/api/dumps", handler.Routes())
	return r
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDumpHandler_ListDumps(t *testing.T) {
	modified := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &MockDumpService{}
	svc.On("List").Return([]services.DumpSummary{
		{Name: "steel_run", File: "steel_run.pkl", Size: 2048, Modified: modified},
	}, nil)

	rec := serve(newTestRouter(t, svc), "/api/dumps")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"dumps": [{"name": "steel_run", "file": "steel_run.pkl", "size": 2048,
		           "modified": "2026-03-01T12:00:00Z", "loaded": false}],
		"count": 1
	}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestDumpHandler_ListDumps_Error(t *testing.T) {
	svc := &MockDumpService{}
	svc.On("List").Return(nil, apperrorsStorage())

	rec := serve(newTestRouter(t, svc), "/api/dumps")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error_code":"STORAGE"`)
}

func apperrorsStorage() error {
	return apierrors.NewStorageError("cannot list dumps", errors.New("permission denied"))
}

func TestDumpHandler_GetDump(t *testing.T) {
	svc := &MockDumpService{}
	svc.On("Describe", "steel_run").Return(&services.DumpDetail{
		DumpSummary: services.DumpSummary{Name: "steel_run", Loaded: true},
		ID:          "id-1",
		Filename:    "steel_run",
		Tables:      []services.TableStatus{{Name: "line", Computed: true}},
	}, nil)
	svc.On("Describe", "absent").Return(nil, apierrors.NewNotFoundError(`dump "absent"`))

	h := newTestRouter(t, svc)

	rec := serve(h, "/api/dumps/steel_run")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "id-1", body["id"])
	assert.Equal(t, "steel_run", body["name"])

	rec = serve(h, "/api/dumps/absent")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDumpHandler_GetTable_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apierrors.NewNotFoundError(`table "spectrum"`), http.StatusNotFound},
		{"validation", apierrors.NewAppValidationError("invalid dump name"), http.StatusBadRequest},
		{"format mismatch", apierrors.NewFormatMismatchError("x.csv", ".pkl"), http.StatusUnsupportedMediaType},
		{"deserialization", apierrors.NewDeserializationError("not a pickle", nil), http.StatusUnprocessableEntity},
		{"missing field", apierrors.NewMissingFieldError("Probe"), http.StatusUnprocessableEntity},
		{"malformed field", apierrors.NewMalformedFieldError("Filename", "string", 1), http.StatusUnprocessableEntity},
		{"storage", apperrorsStorage(), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockDumpService{}
			svc.On("Table", "steel_run", "line").Return(nil, tt.err)

			rec := serve(newTestRouter(t, svc), "/api/dumps/steel_run/tables/line")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDumpHandler_GetTable_Formats(t *testing.T) {
	table := &domain.ConcentrationTable{
		Index:   []string{"S1"},
		Columns: []string{"Fe", "Cr"},
		LineIDs: []int{10, -1},
		Values:  [][]float64{{97.1, 0}},
		Valid:   [][]bool{{true, false}},
	}

	tests := []struct {
		query       string
		contentType string
		body        string
	}{
		{"", "application/json", `{"table":"concentration","columns":["probe_name","Fe","Cr"],"rows":[["S1",97.1,null]]}`},
		{"?format=json", "application/json", `{"table":"concentration","columns":["probe_name","Fe","Cr"],"rows":[["S1",97.1,null]]}`},
		{"?format=csv", "text/csv; charset=utf-8", "probe_name,Fe,Cr\nS1,97.1,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			svc := &MockDumpService{}
			svc.On("Table", "steel_run", "concentration").Return(table, nil)

			rec := serve(newTestRouter(t, svc), "/api/dumps/steel_run/tables/concentration"+tt.query)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			if tt.contentType == "application/json" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			} else {
				assert.Equal(t, tt.body, rec.Body.String())
				assert.Contains(t, rec.Header().Get("Content-Disposition"), "steel_run_concentration.csv")
			}
		})
	}
}

func TestDumpHandler_GetTable_UnknownFormat(t *testing.T) {
	svc := &MockDumpService{}

	rec := serve(newTestRouter(t, svc), "/api/dumps/steel_run/tables/line?format=parquet")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Table", mock.Anything, mock.Anything)
}

func TestDumpHandler_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePickle(t, dir, "steel_run.pkl", testutil.SteelScenario())
	logger, _ := testutil.NewTestLogger(t)
	svc := services.NewDumpService(dir, loader.New(loader.WithLogger(logger)), logger)
	h := newTestRouter(t, svc)

	rec := serve(h, "/api/dumps/steel_run/tables/skipped")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"table": "skipped",
		"columns": ["position", "probe_name", "reason"],
		"rows": [[1, "Blank", "no parallel measurements"]]
	}`, rec.Body.String())

	rec = serve(h, "/api/dumps/steel_run/tables/index?format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "probe_name,parallel_name\nS1,1\nS1,2\nS2,1\n", rec.Body.String())

	rec = serve(h, "/api/dumps/steel_run/tables/spectrum")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, "/api/dumps")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loaded":true`)
}
