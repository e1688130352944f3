package persist_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoconnect/ngoconnect/internal/config"
	"github.com/ngoconnect/ngoconnect/internal/crypto"
	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/persist"
	_ "github.com/ngoconnect/ngoconnect/internal/persist/file"
	_ "github.com/ngoconnect/ngoconnect/internal/persist/memory"
)

func sampleRecord() *persist.Record {
	return &persist.Record{
		Actor:   models.Actor{Email: "help@ngo.org", Role: models.RoleNGO},
		Marker:  "header.payload.signature",
		SavedAt: time.Date(2024, 12, 1, 10, 30, 0, 0, time.UTC),
	}
}

// ---------------------------------------------------------------------------
// Codec
// ---------------------------------------------------------------------------

func TestCodec_Plain(t *testing.T) {
	c := &persist.Codec{}
	data, err := c.Encode(sampleRecord())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"email":"help@ngo.org"`)

	got, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), got)
}

func TestCodec_NilIsPlain(t *testing.T) {
	var c *persist.Codec
	data, err := c.Encode(sampleRecord())
	require.NoError(t, err)
	got, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "help@ngo.org", got.Actor.Email)
}

func TestCodec_Sealed(t *testing.T) {
	sealer, err := crypto.ParseSealer("correct horse battery staple")
	require.NoError(t, err)
	c := &persist.Codec{Sealer: sealer}

	data, err := c.Encode(sampleRecord())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "help@ngo.org")

	got, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), got)

	// plain bytes cannot be opened by a sealing codec
	plain, _ := (&persist.Codec{}).Encode(sampleRecord())
	_, err = c.Decode(plain)
	assert.Error(t, err)
}

func TestCodec_Garbage(t *testing.T) {
	_, err := (&persist.Codec{}).Decode([]byte("{not json"))
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Factory
// ---------------------------------------------------------------------------

func TestNew_UnknownBackend(t *testing.T) {
	_, err := persist.New(&config.SessionConfig{Backend: "etcd"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported session backend: etcd"))
	assert.Contains(t, err.Error(), "memory")
}

func TestNew_RegisteredBackends(t *testing.T) {
	names := persist.Backends()
	assert.Contains(t, names, "file")
	assert.Contains(t, names, "memory")
}

func TestNew_PassesSealingCodec(t *testing.T) {
	var got *persist.Codec
	persist.Register("capture", func(_ *config.SessionConfig, codec *persist.Codec) (persist.Persister, error) {
		got = codec
		return nil, errors.New("not needed")
	})

	_, _ = persist.New(&config.SessionConfig{Backend: "capture"})
	require.NotNil(t, got)
	assert.Nil(t, got.Sealer)

	_, _ = persist.New(&config.SessionConfig{Backend: "capture", EncryptionKey: "passphrase"})
	require.NotNil(t, got)
	assert.NotNil(t, got.Sealer)
}

func TestNew_MemoryRoundTrip(t *testing.T) {
	p, err := persist.New(&config.SessionConfig{Backend: "memory"})
	require.NoError(t, err)
	defer p.Close()

	ctx := context.Background()
	_, err = p.Load(ctx)
	assert.ErrorIs(t, err, persist.ErrNotFound)

	require.NoError(t, p.Save(ctx, sampleRecord()))
	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), got)

	require.NoError(t, p.Clear(ctx))
	require.NoError(t, p.Clear(ctx))
	_, err = p.Load(ctx)
	assert.ErrorIs(t, err, persist.ErrNotFound)
}
