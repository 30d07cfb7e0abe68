// Package config provides centralized configuration management for stayscope.
// It handles loading configuration from multiple sources, validation, and
// provides a type-safe API for accessing configuration values throughout the
// application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A local .env file, when present
//	3. Configuration files (YAML)
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern STAYSCOPE_* for namespacing:
//
//	STAYSCOPE_SERVER_PORT=8080
//	STAYSCOPE_LOGGING_LEVEL=debug
//	STAYSCOPE_DATASET_DELIMITER=;
//	STAYSCOPE_PATHS_EXPORTS_DIR=/var/lib/stayscope/exports
//
// # Path Management
//
// The package resolves the data, exports and logs directories against the
// working directory (absolute configured paths win):
//
//	paths, err := config.ResolvePaths(cfg.Paths)
//	exportPath := paths.GetExportPath("stats.json")
//
// # Validation
//
// All configuration is validated at load time with go-playground/validator
// struct tags; logging format and output fall back to safe values instead of
// failing.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
