package persist

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ngoconnect/ngoconnect/internal/config"
	"github.com/ngoconnect/ngoconnect/internal/crypto"
)

// FactoryFunc creates a persister from session configuration
type FactoryFunc func(cfg *config.SessionConfig, codec *Codec) (Persister, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]FactoryFunc)
)

// Register registers a persister backend factory
func Register(name string, factory FactoryFunc) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = factory
}

// Backends returns the registered backend names, sorted
func Backends() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the persister selected by cfg.Backend. When cfg.EncryptionKey is set,
// records are sealed before they reach the backend.
func New(cfg *config.SessionConfig) (Persister, error) {
	factoriesMu.RLock()
	factory, ok := factories[cfg.Backend]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported session backend: %s (registered: %s)", cfg.Backend, strings.Join(Backends(), ", "))
	}

	codec := &Codec{}
	if cfg.EncryptionKey != "" {
		sealer, err := crypto.ParseSealer(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("invalid session.encryption_key: %w", err)
		}
		codec.Sealer = sealer
	}

	return factory(cfg, codec)
}
