// Package redis implements the session persister backed by one redis key, for clients
// that share a session across hosts.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ngoconnect/ngoconnect/internal/config"
	"github.com/ngoconnect/ngoconnect/internal/persist"
)

func init() {
	persist.Register("redis", func(cfg *config.SessionConfig, codec *persist.Codec) (persist.Persister, error) {
		return Dial(cfg.Redis.URL, cfg.Redis.Key, codec)
	})
}

// Cmdable is the subset of the redis client the persister uses
type Cmdable interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Close() error
}

// Persister stores the record under a single key
type Persister struct {
	client Cmdable
	key    string
	codec  *persist.Codec
}

// Dial parses redisURL, connects, and verifies the connection with PING
func Dial(redisURL, key string, codec *persist.Codec) (*Persister, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := goredis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Debug("session redis connected", "addr", opt.Addr, "db", opt.DB, "key", key)
	return New(client, key, codec), nil
}

// New wraps an existing client
func New(client Cmdable, key string, codec *persist.Codec) *Persister {
	return &Persister{client: client, key: key, codec: codec}
}

// Load reads the record from the key
func (p *Persister) Load(ctx context.Context) (*persist.Record, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, persist.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session from Redis: %w", err)
	}
	return p.codec.Decode(data)
}

// Save writes the record to the key without expiry
func (p *Persister) Save(ctx context.Context, rec *persist.Record) error {
	data, err := p.codec.Encode(rec)
	if err != nil {
		return err
	}
	if err := p.client.Set(ctx, p.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write session to Redis: %w", err)
	}
	return nil
}

// Clear deletes the key
func (p *Persister) Clear(ctx context.Context) error {
	if err := p.client.Del(ctx, p.key).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

// Close closes the client
func (p *Persister) Close() error {
	return p.client.Close()
}
