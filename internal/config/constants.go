package config

import "time"

// Application constants
const (
	// Application Info
	AppName = "spectrumloader"

	// EnvPrefix namespaces every environment variable, e.g. SPECTRUM_LOGGING_LEVEL.
	EnvPrefix = "SPECTRUM"

	// ConfigFileEnv overrides the config file location.
	ConfigFileEnv = "SPECTRUM_CONFIG_FILE"

	// Dumps
	DumpExtension  = ".pkl"
	DefaultDumpDir = "data/dumps"

	// Logging
	DefaultLogsDir  = "logs"
	DefaultLogLevel = "info"

	// Server
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 60 * time.Second

	// Rate limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50
)
