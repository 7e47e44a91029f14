// Package services implements the application logic behind the HTTP API.
//
// DumpService is a catalog of the dump files in one directory. It loads a
// dump on first access, keeps it while the file is unchanged, and collapses
// concurrent loads of the same dump into one. HealthService reports version
// and liveness information.
//
// Services take their collaborators through constructors and log through an
// injected *slog.Logger tagged with their component name.
package services
