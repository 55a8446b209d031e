// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this Config: Port is the
// listen port, ApiKey protects every route through the auth middleware, and
// ShutdownTimeoutSeconds bounds graceful shutdown.
package server
