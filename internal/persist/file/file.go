// Package file implements the session persister backed by a single JSON file. The file
// is written with mode 0600 through a temporary file and rename, so a crash mid-write
// never leaves a truncated session behind.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ngoconnect/ngoconnect/internal/config"
	"github.com/ngoconnect/ngoconnect/internal/persist"
)

func init() {
	persist.Register("file", func(cfg *config.SessionConfig, codec *persist.Codec) (persist.Persister, error) {
		return New(cfg.File.Path, codec)
	})
}

// Persister stores the record in one file
type Persister struct {
	path  string
	codec *persist.Codec
}

// New creates a file persister, creating the parent directory if needed
func New(path string, codec *persist.Codec) (*Persister, error) {
	if path == "" {
		return nil, fmt.Errorf("session file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &Persister{path: path, codec: codec}, nil
}

// Load reads and decodes the session file
func (p *Persister) Load(_ context.Context) (*persist.Record, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, persist.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) == 0 {
		return nil, persist.ErrNotFound
	}
	return p.codec.Decode(data)
}

// Save atomically replaces the session file
func (p *Persister) Save(_ context.Context, rec *persist.Record) error {
	data, err := p.codec.Encode(rec)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear deletes the session file
func (p *Persister) Clear(_ context.Context) error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// Close is a no-op
func (p *Persister) Close() error { return nil }

// Path returns the session file location
func (p *Persister) Path() string { return p.path }
