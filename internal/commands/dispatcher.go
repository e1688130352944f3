// Package commands implements the async command layer. Each command marks its slice as
// loading, performs exactly one remote call carrying the current actor, and then applies
// one transition on success or stores one message on failure. Commands never retry.
//
// Two commands of the same kind may be in flight at once. By default the last
// settlement wins; with DiscardStaleSettlements every kind carries a sequence number
// and a settlement older than the newest issued command of its kind is dropped.
package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/remote"
	"github.com/ngoconnect/ngoconnect/internal/store"
	"github.com/ngoconnect/ngoconnect/internal/telemetry"
)

// ActorSource supplies the identity attached to remote calls
type ActorSource interface {
	CurrentActor() *models.Actor
}

// Options configures a Dispatcher
type Options struct {
	DiscardStaleSettlements bool
}

// Dispatcher runs commands against one State
type Dispatcher struct {
	actors ActorSource
	remote remote.Service
	state  *store.State
	fence  bool

	seqMu sync.Mutex
	seq   map[Kind]uint64
}

// New creates a dispatcher. actors is usually the *session.Store.
func New(actors ActorSource, svc remote.Service, state *store.State, opts Options) *Dispatcher {
	if state == nil {
		state = store.New()
	}
	return &Dispatcher{
		actors: actors,
		remote: svc,
		state:  state,
		fence:  opts.DiscardStaleSettlements,
		seq:    make(map[Kind]uint64),
	}
}

// State returns the slices the dispatcher drives
func (d *Dispatcher) State() *store.State {
	return d.state
}

// slice is the status half of every store slice
type slice interface {
	Begin()
	Fail(msg string)
}

// issue returns the sequence number of a newly issued command of kind
func (d *Dispatcher) issue(kind Kind) uint64 {
	d.seqMu.Lock()
	defer d.seqMu.Unlock()
	d.seq[kind]++
	return d.seq[kind]
}

// stale reports whether a newer command of kind was issued after ticket
func (d *Dispatcher) stale(kind Kind, ticket uint64) bool {
	if !d.fence {
		return false
	}
	d.seqMu.Lock()
	defer d.seqMu.Unlock()
	return d.seq[kind] != ticket
}

func (d *Dispatcher) actor() *models.Actor {
	if d.actors == nil {
		return nil
	}
	return d.actors.CurrentActor()
}

// refuse fails a command before any remote call is made. The owning slice still records
// the failure so status observers see it.
func refuse[T any](d *Dispatcher, kind Kind, sl slice, err error) (T, error) {
	var zero T
	msg := err.Error()
	sl.Fail(msg)
	telemetry.CommandsTotal.WithLabelValues(string(kind), telemetry.OutcomeFailure).Inc()
	slog.Debug("command refused", "kind", kind, "message", msg)
	return zero, &Error{Kind: kind, Message: msg, Err: err}
}

// run executes one command. settle is applied only on a successful, current settlement.
func run[T any](ctx context.Context, d *Dispatcher, kind Kind, sl slice, fallback string,
	call func(context.Context) (T, error), settle func(T)) (T, error) {

	var zero T
	ticket := d.issue(kind)
	inFlight := telemetry.CommandsInFlight.WithLabelValues(string(kind))
	inFlight.Inc()
	defer inFlight.Dec()

	sl.Begin()
	start := time.Now()

	result, err := call(remote.WithActor(ctx, d.actor()))
	elapsed := time.Since(start)
	telemetry.CommandDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())

	if d.stale(kind, ticket) {
		telemetry.CommandsTotal.WithLabelValues(string(kind), telemetry.OutcomeSuperseded).Inc()
		telemetry.StaleSettlementsDiscardedTotal.WithLabelValues(string(kind)).Inc()
		slog.Debug("stale settlement discarded", "kind", kind, "ticket", ticket, "duration", elapsed)
		return zero, ErrSuperseded
	}

	if err != nil {
		msg := remote.MessageOf(err, fallback)
		sl.Fail(msg)
		telemetry.CommandsTotal.WithLabelValues(string(kind), telemetry.OutcomeFailure).Inc()
		slog.Debug("command failed", "kind", kind, "message", msg, "error", err, "duration", elapsed)
		return zero, &Error{Kind: kind, Message: msg, Err: err}
	}

	settle(result)
	telemetry.CommandsTotal.WithLabelValues(string(kind), telemetry.OutcomeSuccess).Inc()
	slog.Debug("command settled", "kind", kind, "duration", elapsed)
	return result, nil
}
