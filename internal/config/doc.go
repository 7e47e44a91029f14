// Package config provides centralized configuration management for spectrumloader.
// It handles loading configuration from multiple sources, validation, and provides
// a type-safe API for accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SPECTRUM_<SECTION>_<FIELD>:
//
//	SPECTRUM_SERVER_PORT=8080
//	SPECTRUM_PATHS_DUMP_DIR=/data/atom/dumps
//	SPECTRUM_LOADER_VERBOSE=true
//	SPECTRUM_LOGGING_LEVEL=debug
//
// The config file is taken from SPECTRUM_CONFIG_FILE, or config.yaml /
// configs/config.yaml relative to the working directory.
//
// # Validation
//
// Constraints live in `validate` struct tags and are checked with
// go-playground/validator after all sources are merged.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
