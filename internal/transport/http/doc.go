// Package http implements the HTTP handlers of the dump server.
//
// Handlers are a thin layer between HTTP and the services package: they
// parse the request, call a service, and render either the result or an
// RFC 7807 problem through errors.ErrorHandler.
//
// # Routes
//
//	GET /api/dumps                              list dump files
//	GET /api/dumps/{name}                       describe one dump
//	GET /api/dumps/{name}/tables/{table}        one table (?format=json|csv|text|xlsx)
//	GET /api/health                             health with dump directory check
//	GET /api/health/live                        liveness
//	GET /api/version                            build information
//
// Tables are rendered with the exporter package. JSON is the default; a
// missing value is encoded as null.
package http
