// Package safego provides panic-recovering helpers for goroutines that settle commands.
package safego

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// ErrPanicked is wrapped by the error Run returns when fn panicked
var ErrPanicked = errors.New("recovered panic")

// Go launches fn in a new goroutine. A panic is recovered and logged rather than
// crashing the process.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("recovered panic in background goroutine", "panic", r)
			}
		}()
		fn()
	}()
}

// Run calls fn and converts a panic into an error wrapping ErrPanicked.
func Run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered panic", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return fn()
}
