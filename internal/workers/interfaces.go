// Package workers runs the long-lived parts of a process as one group.
// It defines the Worker interface and a Workers aggregate: when any worker
// returns, the others are cancelled.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks until the work is done or ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a plain function to Worker.
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
