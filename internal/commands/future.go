package commands

import (
	"context"

	"github.com/ngoconnect/ngoconnect/internal/safego"
)

// Future is the settled result of a command started with Go
type Future struct {
	done chan struct{}
	err  error
}

// Go runs fn on a panic-safe goroutine and returns a Future that settles with its
// error. A panic settles the Future with an error wrapping safego.ErrPanicked.
func (d *Dispatcher) Go(ctx context.Context, fn func(context.Context) error) *Future {
	f := &Future{done: make(chan struct{})}
	safego.Go(func() {
		defer close(f.done)
		f.err = safego.Run(func() error { return fn(ctx) })
	})
	return f
}

// Done is closed when the command has settled
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the command settles or ctx ends
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the settled error; it is only meaningful after Done is closed
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}
