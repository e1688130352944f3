// Package persist defines the Persister interface that stores the authenticated session
// between runs, and the registry that maps backend names to constructors.
//
// Backends register themselves from an init() function in their own package:
//
//	func init() {
//	    persist.Register("mybackend", func(cfg *config.SessionConfig, codec *persist.Codec) (persist.Persister, error) {
//	        return New(cfg, codec)
//	    })
//	}
//
// Binaries select backends with a blank import, so adding one requires no change here.
package persist

import (
	"context"
	"errors"
	"time"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// ErrNotFound is returned by Load when nothing has been persisted
var ErrNotFound = errors.New("no persisted session")

// Record is the persisted session state: the actor and its session marker, nothing else
type Record struct {
	Actor   models.Actor `json:"actor"`
	Marker  string       `json:"marker"`
	SavedAt time.Time    `json:"savedAt"`
}

// Persister stores at most one Record
type Persister interface {
	// Load returns the stored record or ErrNotFound
	Load(ctx context.Context) (*Record, error)

	// Save replaces the stored record
	Save(ctx context.Context, rec *Record) error

	// Clear removes the stored record. Clearing an empty store is not an error.
	Clear(ctx context.Context) error

	// Close releases backend resources
	Close() error
}
