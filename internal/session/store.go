// Package session owns the authenticated Actor and its session marker. State is restored
// from a persister when the store is opened, written through on login, and removed on
// logout. Role predicates are pure reads over the current actor.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/persist"
	"github.com/ngoconnect/ngoconnect/internal/persist/memory"
	"github.com/ngoconnect/ngoconnect/internal/remote"
	"github.com/ngoconnect/ngoconnect/internal/store"
	"github.com/ngoconnect/ngoconnect/internal/telemetry"
)

// Authenticator is the part of the remote service the session store calls
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Actor, error)
	RegisterUser(ctx context.Context, reg models.UserRegistration) (*remote.Confirmation, error)
	RegisterOrganization(ctx context.Context, reg models.OrganizationRegistration) (*remote.Confirmation, error)
}

// Options configures Open
type Options struct {
	Remote Authenticator
	// Persister defaults to an in-memory persister
	Persister persist.Persister
	// Signer defaults to a signer with an ephemeral secret
	Signer *Signer
}

// Store holds the session state
type Store struct {
	remote    Authenticator
	persister persist.Persister
	signer    *Signer

	mu     sync.RWMutex
	actor  *models.Actor
	marker string
	status store.RequestStatus

	listenMu  sync.Mutex
	listeners map[int]func()
	nextID    int
}

// Open creates a store and restores any persisted session. A persisted session whose
// marker does not verify is discarded and the store starts logged out.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Remote == nil {
		return nil, ErrNoRemote
	}
	if opts.Persister == nil {
		opts.Persister = memory.New()
	}
	if opts.Signer == nil {
		opts.Signer = NewSigner("")
	}

	s := &Store{
		remote:    opts.Remote,
		persister: opts.Persister,
		signer:    opts.Signer,
		listeners: make(map[int]func()),
	}
	s.restore(ctx)
	return s, nil
}

func (s *Store) restore(ctx context.Context) {
	rec, err := s.persister.Load(ctx)
	if err != nil {
		if !errors.Is(err, persist.ErrNotFound) {
			slog.Warn("failed to restore session, starting logged out", "error", err)
			telemetry.SessionEventsTotal.WithLabelValues("restore_rejected").Inc()
		}
		return
	}

	if !rec.Actor.Role.Valid() || rec.Actor.Email == "" {
		s.discard(ctx, "persisted actor is incomplete")
		return
	}
	if err := s.signer.Verify(rec.Marker, rec.Actor); err != nil {
		s.discard(ctx, err.Error())
		return
	}

	actor := rec.Actor
	s.actor = &actor
	s.marker = rec.Marker
	telemetry.SessionEventsTotal.WithLabelValues("restore").Inc()
	slog.Debug("session restored", "email", actor.Email, "role", actor.Role, "saved_at", rec.SavedAt)
}

func (s *Store) discard(ctx context.Context, reason string) {
	slog.Warn("discarding persisted session", "reason", reason)
	telemetry.SessionEventsTotal.WithLabelValues("restore_rejected").Inc()
	if err := s.persister.Clear(ctx); err != nil {
		slog.Warn("failed to clear persisted session", "error", err)
	}
}

// Login exchanges credentials for an actor, then stores and persists it. On failure no
// state is stored and the returned *AuthError carries the message to show.
func (s *Store) Login(ctx context.Context, creds models.Credentials) (*models.Actor, error) {
	s.setStatus(store.RequestStatus{Loading: true})

	actor, err := s.remote.Login(ctx, creds)
	if err != nil {
		return nil, s.fail(err, FallbackLogin, "login_failed")
	}

	marker, err := s.signer.Sign(*actor)
	if err != nil {
		return nil, s.fail(err, FallbackLogin, "login_failed")
	}

	s.mu.Lock()
	cp := *actor
	s.actor = &cp
	s.marker = marker
	s.status = store.RequestStatus{}
	s.mu.Unlock()

	rec := &persist.Record{Actor: cp, Marker: marker, SavedAt: time.Now().UTC()}
	if err := s.persister.Save(ctx, rec); err != nil {
		// the in-memory session stands; only persistence across runs is lost
		slog.Warn("failed to persist session", "error", err)
		telemetry.SessionEventsTotal.WithLabelValues("persist_failed").Inc()
	}

	telemetry.SessionEventsTotal.WithLabelValues("login").Inc()
	slog.Info("logged in", "email", cp.Email, "role", cp.Role)
	s.notify()

	out := cp
	return &out, nil
}

// Logout clears the actor in memory and in the persister. It is idempotent and never
// fails; persistence errors are logged.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.actor != nil
	s.actor = nil
	s.marker = ""
	s.mu.Unlock()

	if err := s.persister.Clear(ctx); err != nil {
		slog.Warn("failed to clear persisted session", "error", err)
		telemetry.SessionEventsTotal.WithLabelValues("persist_failed").Inc()
	}

	if wasAuthenticated {
		telemetry.SessionEventsTotal.WithLabelValues("logout").Inc()
		slog.Info("logged out")
	}
	s.notify()
}

// UpdateActor merges the non-empty fields of patch into the current actor, re-signs the
// marker, and persists the result.
func (s *Store) UpdateActor(ctx context.Context, patch models.Actor) (*models.Actor, error) {
	if patch.Role != "" && !patch.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, patch.Role)
	}

	s.mu.Lock()
	if s.actor == nil {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	updated := *s.actor
	if patch.Email != "" {
		updated.Email = patch.Email
	}
	if patch.Role != "" {
		updated.Role = patch.Role
	}
	marker, err := s.signer.Sign(updated)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.actor = &updated
	s.marker = marker
	s.mu.Unlock()

	rec := &persist.Record{Actor: updated, Marker: marker, SavedAt: time.Now().UTC()}
	if err := s.persister.Save(ctx, rec); err != nil {
		slog.Warn("failed to persist session", "error", err)
		telemetry.SessionEventsTotal.WithLabelValues("persist_failed").Inc()
	}
	telemetry.SessionEventsTotal.WithLabelValues("update").Inc()
	s.notify()

	out := updated
	return &out, nil
}

// RegisterUser creates a plain user account. No actor is stored.
func (s *Store) RegisterUser(ctx context.Context, reg models.UserRegistration) (*remote.Confirmation, error) {
	s.setStatus(store.RequestStatus{Loading: true})
	conf, err := s.remote.RegisterUser(ctx, reg)
	if err != nil {
		return nil, s.fail(err, FallbackRegisterUser, "register_failed")
	}
	s.setStatus(store.RequestStatus{})
	return conf, nil
}

// RegisterOrganization creates an NGO account awaiting approval. No actor is stored.
func (s *Store) RegisterOrganization(ctx context.Context, reg models.OrganizationRegistration) (*remote.Confirmation, error) {
	s.setStatus(store.RequestStatus{Loading: true})
	conf, err := s.remote.RegisterOrganization(ctx, reg)
	if err != nil {
		return nil, s.fail(err, FallbackRegisterOrganization, "register_failed")
	}
	s.setStatus(store.RequestStatus{})
	return conf, nil
}

func (s *Store) fail(err error, fallback, event string) error {
	msg := remote.MessageOf(err, fallback)
	s.setStatus(store.RequestStatus{Error: msg})
	telemetry.SessionEventsTotal.WithLabelValues(event).Inc()
	slog.Debug("session operation failed", "event", event, "error", err)
	return &AuthError{Message: msg, Err: err}
}

// CurrentActor returns a copy of the actor, or nil when logged out
func (s *Store) CurrentActor() *models.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.actor == nil {
		return nil
	}
	cp := *s.actor
	return &cp
}

// Marker returns the session marker, empty when logged out
func (s *Store) Marker() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.marker
}

// IsAuthenticated reports whether an actor is present
func (s *Store) IsAuthenticated() bool {
	return s.CurrentActor() != nil
}

// IsAdmin reports whether the actor is an administrator
func (s *Store) IsAdmin() bool {
	return s.CurrentActor().IsAdmin()
}

// IsOrganization reports whether the actor is an NGO
func (s *Store) IsOrganization() bool {
	return s.CurrentActor().IsOrganization()
}

// Status returns the request status of the last session operation
func (s *Store) Status() store.RequestStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// ClearError drops the stored error
func (s *Store) ClearError() {
	s.mu.Lock()
	s.status.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Store) setStatus(st store.RequestStatus) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every session change
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.listenMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenMu.Lock()
			delete(s.listeners, id)
			s.listenMu.Unlock()
		})
	}
}

func (s *Store) notify() {
	s.listenMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	// subscription order
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.listenMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Close releases the persister
func (s *Store) Close() error {
	return s.persister.Close()
}
