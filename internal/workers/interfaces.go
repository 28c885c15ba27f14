// Package workers manages the background workers of the sync adapter.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

import "context"

// Worker is a background process started with Run and halted with Stop.
//
// Run must not block: implementations spawn their own goroutines and keep
// working until ctx is cancelled or Stop is called. Stop blocks until the
// worker has fully exited.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
