package commands

import (
	"errors"
	"fmt"
)

var (
	// ErrSuperseded is returned when fencing discards a settlement because a newer
	// command of the same kind was issued while this one was in flight
	ErrSuperseded = errors.New("command superseded by a newer command of the same kind")
	// ErrNoActor is returned when a command needs the current actor and nobody is logged in
	ErrNoActor = errors.New("no authenticated actor")
	// ErrMissingID is returned when a command that targets an entity gets no id
	ErrMissingID = errors.New("entity id is required")
	// ErrUnknownStatus is returned when a requirement list is asked for a status other
	// than pending, approved, or rejected
	ErrUnknownStatus = errors.New("unknown requirement status")
)

// Error is a failed command. Message is what the owning slice stored.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
