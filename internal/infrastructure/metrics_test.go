package infrastructure

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrumloader/pkg/contracts/domain"
)

// stubCodedError stands in for the application errors, which import this package.
type stubCodedError string

func (e stubCodedError) Error() string     { return "[" + string(e) + "] failed" }
func (e stubCodedError) ErrorCode() string { return string(e) }

func TestMetrics_ObserveLoad(t *testing.T) {
	m := NewMetrics()

	m.ObserveLoad(10*time.Millisecond, nil)
	m.ObserveLoad(time.Millisecond, stubCodedError("FORMAT_MISMATCH"))
	m.ObserveLoad(time.Millisecond, io.ErrUnexpectedEOF)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dumpsLoaded.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dumpsLoaded.WithLabelValues("FORMAT_MISMATCH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dumpsLoaded.WithLabelValues("error")))
}

func TestMetrics_ObserveDerivation(t *testing.T) {
	m := NewMetrics()

	m.ObserveDerivation(domain.TableLine, time.Millisecond, nil)
	m.ObserveDerivation(domain.TableLine, time.Millisecond, nil)
	m.ObserveDerivation(domain.TableIntensity, time.Millisecond, stubCodedError("MISSING_FIELD"))
	m.ObserveSkippedProbe()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.derivations.WithLabelValues("line", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.derivations.WithLabelValues("intensity", "MISSING_FIELD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skippedProbes))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("/api/dumps", http.StatusOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `spectrumloader_http_requests_total{code="200",route="/api/dumps"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
