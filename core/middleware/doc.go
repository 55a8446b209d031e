// Package middleware groups the Fiber middleware of the HTTP surface.
//
//   - auth: API key check on every request.
//   - rayid: request id generation, stored in locals and echoed in a response header.
//
// rayid must be registered first so every later log line carries the id.
package middleware
