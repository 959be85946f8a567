// Package cli holds the shared bootstrap for the SDK-backed command-line
// apps: config loading, the SQLite-backed credential session, and the API
// client with its session-expiry hook.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zestro/zestro-go/internal/api"
	"github.com/zestro/zestro-go/internal/config"
	"github.com/zestro/zestro-go/internal/credentials"
	"github.com/zestro/zestro-go/internal/logging"
)

// Runtime bundles what every command needs once the app is bootstrapped.
type Runtime struct {
	Cfg     config.Client
	Logger  *slog.Logger
	Session *credentials.Session
	API     *api.Client
}

// Init loads configuration, opens the credential store at dbFile under the
// data directory, and builds the API client. reloginHint is printed when the
// server reports the session expired.
func (r *Runtime) Init(keys credentials.Keys, dbFile, reloginHint string) error {
	cfg, err := config.LoadClient("")
	if err != nil {
		return err
	}
	logger := logging.NewCLI(cfg.LogLevel)

	kv, err := credentials.OpenSQLite(filepath.Join(cfg.DataDir, dbFile), logger)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	session := credentials.NewSession(kv, keys, logger)

	client := api.New(api.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		Session: session,
		Logger:  logger,
	})
	client.OnSessionExpired(func() {
		fmt.Fprintln(os.Stderr, "Session expired. "+reloginHint)
	})

	r.Cfg = cfg
	r.Logger = logger
	r.Session = session
	r.API = client
	return nil
}

// Close releases the credential store.
func (r *Runtime) Close() {
	if r.Session == nil {
		return
	}
	if err := r.Session.Close(); err != nil {
		r.Logger.Warn("close credential store", "error", err)
	}
}

// Unwrap converts a failure envelope into an error and returns the response
// payload otherwise.
func Unwrap[T any](env api.Envelope[T]) (*T, error) {
	if !env.Success || env.Response == nil {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return nil, fmt.Errorf("%s", msg)
	}
	return env.Response, nil
}

// Money renders a minor-unit amount as a decimal string.
func Money(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
