package session

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngoconnect/ngoconnect/internal/config"
)

// secretFileSuffix names the file that holds a generated signing secret, next to the
// session file it signs for
const secretFileSuffix = ".key"

// SignerFor builds the signer for a session configuration. A configured signing secret
// always wins. Without one, the file backend keeps a generated secret beside the session
// file so sessions survive restarts; other backends fall back to a per-process secret.
func SignerFor(cfg *config.SessionConfig) (*Signer, error) {
	if cfg.SigningSecret != "" {
		return NewSigner(cfg.SigningSecret), nil
	}
	if cfg.Backend != "file" || cfg.File.Path == "" {
		return NewSigner(""), nil
	}
	secret, err := LoadOrCreateSecret(cfg.File.Path + secretFileSuffix)
	if err != nil {
		return nil, err
	}
	return NewSigner(secret), nil
}

// LoadOrCreateSecret returns the secret stored at path, generating and writing one with
// mode 0600 on first use.
func LoadOrCreateSecret(path string) (string, error) {
	secret, err := readSecret(path)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("failed to create secret directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			// another process created it first
			return readSecret(path)
		}
		return "", fmt.Errorf("failed to create signing secret: %w", err)
	}
	secret = generateRandomSecret()
	if _, err := f.WriteString(secret + "\n"); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write signing secret: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write signing secret: %w", err)
	}
	slog.Info("generated session signing secret", "path", path)
	return secret, nil
}

func readSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		return "", fmt.Errorf("failed to read signing secret: %w", err)
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("signing secret file %s is empty", path)
	}
	return secret, nil
}
