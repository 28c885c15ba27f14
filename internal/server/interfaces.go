package server

import "context"

// Server defines the lifecycle contract of the control API server.
type Server interface {
	// RunServer serves requests until ctx is cancelled, then shuts the
	// server down gracefully. It returns the first serving error.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting for in-flight requests
	// until ctx is done.
	Shutdown(ctx context.Context) error
}
