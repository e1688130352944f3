// Package memory implements a process-local session persister. Nothing survives a restart;
// it backs tests and one-shot CLI invocations.
package memory

import (
	"context"
	"sync"

	"github.com/ngoconnect/ngoconnect/internal/config"
	"github.com/ngoconnect/ngoconnect/internal/persist"
)

func init() {
	persist.Register("memory", func(*config.SessionConfig, *persist.Codec) (persist.Persister, error) {
		return New(), nil
	})
}

// Persister keeps the record in memory
type Persister struct {
	mu  sync.Mutex
	rec *persist.Record
}

// New creates an empty memory persister
func New() *Persister {
	return &Persister{}
}

// Load returns a copy of the stored record
func (p *Persister) Load(_ context.Context) (*persist.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rec == nil {
		return nil, persist.ErrNotFound
	}
	cp := *p.rec
	return &cp, nil
}

// Save stores a copy of rec
func (p *Persister) Save(_ context.Context, rec *persist.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := *rec
	p.rec = &cp
	return nil
}

// Clear drops the stored record
func (p *Persister) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rec = nil
	return nil
}

// Close is a no-op
func (p *Persister) Close() error { return nil }
