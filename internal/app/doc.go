// Package app wires the dump server together and runs it.
//
// # Initialization Flow
//
//  1. Initialize logging and tracing from the loaded configuration
//  2. Create the metrics registry and the loader that reports to it
//  3. Create the dump catalog and health services
//  4. Set up middleware, handlers and the /metrics endpoint
//  5. Configure the HTTP server
//
// # Usage
//
//	cfg, err := config.Load()
//	...
//	application, err := app.NewApplication(cfg)
//	...
//	if err := application.Run(); err != nil {
//	    ...
//	}
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then lets active requests finish
// within the configured shutdown timeout, flushes spans and closes the log
// file. Errors are returned to the caller; the package never calls os.Exit.
package app
