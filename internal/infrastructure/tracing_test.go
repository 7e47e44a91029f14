package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"

	"spectrumloader/internal/config"
	"spectrumloader/internal/shared/testutil"
)

func TestInitTracing_Disabled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	shutdown, err := InitTracing(config.TracingConfig{Enabled: false, Exporter: "stdout"}, logger)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_UnknownExporter(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	_, err := InitTracing(config.TracingConfig{Enabled: true, Exporter: "jaeger"}, logger)
	assert.Error(t, err)
}

func TestStartSpan_RecordsError(t *testing.T) {
	recorder := testutil.NewSpanRecorder(t)

	_, span := StartSpan(context.Background(), "derive.line")
	EndSpan(span, errors.New("boom"))
	_, span = StartSpan(context.Background(), "derive.index")
	EndSpan(span, nil)

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "derive.line", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, codes.Ok, ended[1].Status().Code)
}
