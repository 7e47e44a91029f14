package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrumloader/internal/shared/testutil"
	"spectrumloader/pkg/contracts"
)

func TestHealthService_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := []struct {
		name     string
		dumpDir  string
		expected string
	}{
		{"ready", dir, "ok"},
		{"missing directory", filepath.Join(dir, "absent"), "degraded"},
		{"not a directory", file, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewHealthService(tt.dumpDir, logger).HealthCheck(context.Background())

			assert.Equal(t, tt.expected, status.Status)
			assert.Equal(t, contracts.Version, status.Version)
			assert.Contains(t, status.Services, "dumps")
		})
	}
}

func TestHealthService_LivenessCheck(t *testing.T) {
	status := NewHealthService(t.TempDir(), nil).LivenessCheck(context.Background())

	assert.Equal(t, "alive", status.Status)
	assert.Contains(t, status.Runtime, "go_version")
	assert.Contains(t, status.Runtime, "uptime")
}

func TestHealthService_Version(t *testing.T) {
	info := NewHealthService(t.TempDir(), nil).Version()

	assert.Equal(t, contracts.Version, info.Version)
	assert.Equal(t, contracts.DumpFormatVersion, info.DumpFormat)
}
