package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable the tests touch and restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		ConfigFileEnv,
		"SPECTRUM_SERVER_PORT", "SPECTRUM_SERVER_READ_TIMEOUT",
		"SPECTRUM_LOGGING_LEVEL", "SPECTRUM_LOGGING_FORMAT", "SPECTRUM_LOGGING_OUTPUT",
		"SPECTRUM_PATHS_DUMP_DIR", "SPECTRUM_LOADER_VERBOSE", "SPECTRUM_LOADER_EXTENSION",
		"SPECTRUM_RATE_LIMIT_RPS", "SPECTRUM_TRACING_EXPORTER",
	}
	for _, envVar := range envVars {
		if val, ok := os.LookupEnv(envVar); ok {
			t.Cleanup(func() { os.Setenv(envVar, val) })
		} else {
			t.Cleanup(func() { os.Unsetenv(envVar) })
		}
		os.Unsetenv(envVar)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPort, cfg.Server.Port)
				assert.Equal(t, DefaultReadTimeout, cfg.Server.ReadTimeout)
				assert.Equal(t, DumpExtension, cfg.Loader.Extension)
				assert.False(t, cfg.Loader.Verbose)
				assert.Equal(t, DefaultDumpDir, cfg.Paths.DumpDir)
				assert.Equal(t, "none", cfg.Tracing.Exporter)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 9000
  read_timeout: 5s
loader:
  verbose: true
paths:
  dump_dir: /srv/dumps
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
				assert.True(t, cfg.Loader.Verbose)
				assert.Equal(t, "/srv/dumps", cfg.Paths.DumpDir)
			},
		},
		{
			name: "env overrides file",
			file: "server:\n  port: 9000\n",
			env: map[string]string{
				"SPECTRUM_SERVER_PORT":    "9100",
				"SPECTRUM_LOADER_VERBOSE": "true",
				"SPECTRUM_LOGGING_LEVEL":  "debug",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9100, cfg.Server.Port)
				assert.True(t, cfg.Loader.Verbose)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"SPECTRUM_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "extension without dot",
			env:     map[string]string{"SPECTRUM_LOADER_EXTENSION": "pkl"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			file:    "logging:\n  level: chatty\n",
			wantErr: true,
		},
		{
			name:    "unparseable env value",
			env:     map[string]string{"SPECTRUM_SERVER_PORT": "eighty"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "server: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ConfigFileEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "server:\n  port: 9200\n")
	os.Setenv(ConfigFileEnv, path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Server.Port)
}

func TestLoadFile_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_FileOutputNeedsPath(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""

	assert.Error(t, cfg.Validate())
}

func TestGetDumpDir(t *testing.T) {
	cfg := Default()

	cfg.Paths.DumpDir = "/abs/dumps"
	assert.Equal(t, "/abs/dumps", cfg.GetDumpDir())

	cfg.Paths.DumpDir = "rel/dumps"
	got := cfg.GetDumpDir()
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "dumps", filepath.Base(got))
}
