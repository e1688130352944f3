package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoconnect/ngoconnect/internal/config"
	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/persist"
	"github.com/ngoconnect/ngoconnect/internal/persist/file"
)

// openFromConfig wires a store the way the CLI does for a file backend
func openFromConfig(t *testing.T, cfg *config.SessionConfig, auth *fakeAuth) *Store {
	t.Helper()
	p, err := file.New(cfg.File.Path, &persist.Codec{})
	require.NoError(t, err)
	signer, err := SignerFor(cfg)
	require.NoError(t, err)
	s, err := Open(context.Background(), Options{Remote: auth, Persister: p, Signer: signer})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSignerFor_FileBackendRestoresWithoutConfiguredSecret(t *testing.T) {
	cfg := &config.SessionConfig{Backend: "file"}
	cfg.File.Path = filepath.Join(t.TempDir(), "ngoconnect", "session.json")

	auth := &fakeAuth{actor: &models.Actor{Email: "help@ngo.org", Role: models.RoleNGO}}
	first := openFromConfig(t, cfg, auth)
	_, err := first.Login(context.Background(), models.Credentials{Email: "help@ngo.org", Password: "pw"})
	require.NoError(t, err)

	// a later process with the same configuration
	second := openFromConfig(t, cfg, &fakeAuth{})
	require.NotNil(t, second.CurrentActor())
	assert.Equal(t, "help@ngo.org", second.CurrentActor().Email)
	assert.True(t, second.IsOrganization())

	info, err := os.Stat(cfg.File.Path + secretFileSuffix)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSignerFor_ConfiguredSecretWins(t *testing.T) {
	cfg := &config.SessionConfig{Backend: "file", SigningSecret: testSecret}
	cfg.File.Path = filepath.Join(t.TempDir(), "session.json")

	signer, err := SignerFor(cfg)
	require.NoError(t, err)
	assert.False(t, signer.Ephemeral())

	_, err = os.Stat(cfg.File.Path + secretFileSuffix)
	assert.True(t, os.IsNotExist(err), "no secret file is written when one is configured")

	marker, err := signer.Sign(models.Actor{Email: "a@b.org", Role: models.RoleUser})
	require.NoError(t, err)
	assert.NoError(t, NewSigner(testSecret).Verify(marker, models.Actor{Email: "a@b.org", Role: models.RoleUser}))
}

func TestSignerFor_MemoryBackendIsEphemeral(t *testing.T) {
	signer, err := SignerFor(&config.SessionConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.True(t, signer.Ephemeral())
}

func TestLoadOrCreateSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json.key")

	first, err := LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadOrCreateSecret_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json.key")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))

	_, err := LoadOrCreateSecret(path)
	assert.Error(t, err)
}
