// Package app hosts the stayscope commands and wires the application
// together: configuration loading, logging, dataset resolution, and the
// three front-ends over one loaded listing set.
//
// # Commands
//
//	explore   interactive console menu (default when a dataset is given)
//	serve     read-only HTTP explorer with graceful shutdown
//	report    one-shot stats and host-ranking export
//	version   build and contract versions
//
// # Initialization Flow
//
// Every command goes through the same bootstrap:
//
//	1. Load configuration from environment and optional YAML file
//	2. Initialize the slog logger
//	3. Resolve and create the data, exports and logs directories
//	4. Resolve the dataset argument (file, directory, or discovery)
//	5. Load the dataset once and hand it to the selected front-end
//
// # Error Handling
//
// Commands return errors instead of exiting; main owns the process exit.
// A missing or unreadable dataset is therefore fatal exactly once, at the
// entry point.
package app
