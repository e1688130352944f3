package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ngoconnect/ngoconnect/internal/commands"
	"github.com/ngoconnect/ngoconnect/internal/config"
	"github.com/ngoconnect/ngoconnect/internal/persist"
	"github.com/ngoconnect/ngoconnect/internal/remote"
	"github.com/ngoconnect/ngoconnect/internal/session"
	"github.com/ngoconnect/ngoconnect/internal/telemetry"

	// Register session persisters via init()
	_ "github.com/ngoconnect/ngoconnect/internal/persist/file"
	_ "github.com/ngoconnect/ngoconnect/internal/persist/memory"
	_ "github.com/ngoconnect/ngoconnect/internal/persist/redis"
)

// errNotLoggedIn is returned by commands that need an authenticated actor
var errNotLoggedIn = errors.New("not logged in (run: ngoctl login)")

// app is the wiring shared by every subcommand of one invocation
type app struct {
	cfg      *config.Config
	session  *session.Store
	signer   *session.Signer
	dispatch *commands.Dispatcher
	closers  []func() error
}

// open loads configuration, installs the logger and restores the session
func open(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	a := &app{cfg: cfg}

	closeLog, err := telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Output)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	a.closers = append(a.closers, closeLog)

	client := remote.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	persister, err := persist.New(&cfg.Session)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open session backend: %w", err)
	}

	signer, err := session.SignerFor(&cfg.Session)
	if err != nil {
		_ = persister.Close()
		a.close()
		return nil, fmt.Errorf("load session signing secret: %w", err)
	}
	a.signer = signer

	sess, err := session.Open(ctx, session.Options{
		Remote:    client,
		Persister: persister,
		Signer:    signer,
	})
	if err != nil {
		_ = persister.Close()
		a.close()
		return nil, err
	}
	a.session = sess
	a.closers = append([]func() error{sess.Close}, a.closers...)

	a.dispatch = commands.New(sess, client, nil, commands.Options{
		DiscardStaleSettlements: cfg.Commands.DiscardStaleSettlements,
	})

	slog.Debug("ngoctl ready",
		"base_url", cfg.API.BaseURL,
		"session_backend", cfg.Session.Backend,
		"authenticated", sess.IsAuthenticated())
	return a, nil
}

func (a *app) close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			slog.Debug("close failed", "error", err)
		}
	}
	a.closers = nil
}

// requireLogin fails unless a session was restored
func (a *app) requireLogin() error {
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

// cli carries the root flags and the app opened for the running command
type cli struct {
	configPath string
	app        *app
}

// withApp adapts a handler that needs the opened app into a cobra RunE
func (c *cli) withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if c.app == nil {
			a, err := open(cmd.Context(), c.configPath)
			if err != nil {
				return err
			}
			c.app = a
		}
		defer func() {
			c.app.close()
			c.app = nil
		}()
		return fn(cmd, c.app, args)
	}
}
