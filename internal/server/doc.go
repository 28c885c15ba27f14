// Package server runs the control API.
//
// It owns the HTTP server lifecycle: startup, serving until the caller's
// context is cancelled, and graceful shutdown.
package server
