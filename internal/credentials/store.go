// Package credentials persists the bearer token and last-known profile
// snapshot for a client app. Every operation is total: backend failures
// degrade to "absent" on reads and are logged on writes, so callers never
// have to guard against storage errors crashing a command.
package credentials

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// KV is the durable key/value backend a Session runs on.
type KV interface {
	// Get returns the stored value. ok is false when the key is absent or the
	// backend failed.
	Get(key string) (value string, ok bool)
	Set(key, value string) error
	Delete(key string) error
	// Keys lists every stored key, for the clear-prefix sweep.
	Keys() ([]string, error)
	Close() error
}

// Keys describes the storage schema one app uses for its session state.
type Keys struct {
	Token   string
	Profile string
	// ClearPrefixes widens ClearAll to any key under these prefixes so logout
	// cannot leave orphaned cached state behind.
	ClearPrefixes []string
}

// PartnerKeys is the schema used by the delivery partner app.
func PartnerKeys() Keys {
	return Keys{
		Token:         "partnerToken",
		Profile:       "partnerData",
		ClearPrefixes: []string{"partner", "delivery", "theme"},
	}
}

// AdminKeys is the schema used by the admin app.
func AdminKeys() Keys {
	return Keys{
		Token:         "admin_token",
		Profile:       "admin_user",
		ClearPrefixes: []string{"admin", "theme"},
	}
}

// Session wraps a KV backend with an app's key schema plus an explicit
// registry of session-scoped keys. Features that persist per-login state
// register their keys so ClearAll removes them even when they fall outside
// the prefix list.
type Session struct {
	kv     KV
	keys   Keys
	logger *slog.Logger

	mu     sync.Mutex
	scoped map[string]struct{}
}

// NewSession builds a Session over the given backend and key schema.
func NewSession(kv KV, keys Keys, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{kv: kv, keys: keys, logger: logger, scoped: make(map[string]struct{})}
}

// Token returns the stored bearer token. ok is false when absent.
func (s *Session) Token() (string, bool) {
	return s.kv.Get(s.keys.Token)
}

// SetToken stores the bearer token. Write failures are logged and swallowed.
func (s *Session) SetToken(token string) {
	if err := s.kv.Set(s.keys.Token, token); err != nil {
		s.logger.Warn("store token", "error", err)
	}
}

// Profile JSON-decodes the stored profile snapshot into v. It returns false
// when the snapshot is absent or fails to decode.
func (s *Session) Profile(v any) bool {
	raw, ok := s.kv.Get(s.keys.Profile)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn("decode profile snapshot", "error", err)
		return false
	}
	return true
}

// SetProfile JSON-encodes and stores the profile snapshot.
func (s *Session) SetProfile(v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("encode profile snapshot", "error", err)
		return
	}
	if err := s.kv.Set(s.keys.Profile, string(raw)); err != nil {
		s.logger.Warn("store profile snapshot", "error", err)
	}
}

// SetScoped stores an arbitrary key and registers it as session-scoped so
// ClearAll removes it.
func (s *Session) SetScoped(key, value string) {
	s.RegisterScoped(key)
	if err := s.kv.Set(key, value); err != nil {
		s.logger.Warn("store session key", "key", key, "error", err)
	}
}

// GetScoped reads a key previously stored with SetScoped.
func (s *Session) GetScoped(key string) (string, bool) {
	return s.kv.Get(key)
}

// RegisterScoped marks keys as session-scoped without writing them.
func (s *Session) RegisterScoped(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		s.scoped[k] = struct{}{}
	}
}

// LoggedIn reports whether a token is stored. A lingering profile with no
// token counts as logged out.
func (s *Session) LoggedIn() bool {
	_, ok := s.Token()
	return ok
}

// ClearAll removes the token, the profile, every registered session-scoped
// key, and any key under a clear prefix. It is idempotent and never fails
// the caller; individual delete errors are logged.
func (s *Session) ClearAll() {
	s.delete(s.keys.Token)
	s.delete(s.keys.Profile)

	s.mu.Lock()
	scoped := make([]string, 0, len(s.scoped))
	for k := range s.scoped {
		scoped = append(scoped, k)
	}
	s.mu.Unlock()
	for _, k := range scoped {
		s.delete(k)
	}

	keys, err := s.kv.Keys()
	if err != nil {
		s.logger.Warn("list keys for clear sweep", "error", err)
		return
	}
	for _, k := range keys {
		for _, prefix := range s.keys.ClearPrefixes {
			if strings.HasPrefix(k, prefix) {
				s.delete(k)
				break
			}
		}
	}
}

// Close releases the underlying backend.
func (s *Session) Close() error {
	return s.kv.Close()
}

func (s *Session) delete(key string) {
	if err := s.kv.Delete(key); err != nil {
		s.logger.Warn("delete session key", "key", key, "error", err)
	}
}
