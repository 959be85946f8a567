// Package otp issues and verifies the one-time codes gating login, pickup
// confirmation, and delivery confirmation.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:v1:"

// DevCode is honored by Verify in development mode so scripted flows and
// tests do not need to scrape logs for the real code.
const DevCode = "123456"

// Service issues codes scoped to a purpose+subject pair (e.g.
// "login:9876543210", "pickup:<order-id>").
type Service struct {
	backend  backend
	ttl      time.Duration
	allowDev bool
}

type backend interface {
	put(ctx context.Context, key, code string, ttl time.Duration) error
	get(ctx context.Context, key string) (string, error)
	del(ctx context.Context, key string) error
}

// New builds an OTP service. cache may be nil, in which case codes are held
// in process memory. allowDev enables the fixed development code.
func New(cache *redis.Client, ttl time.Duration, allowDev bool) *Service {
	var b backend
	if cache != nil {
		b = &redisBackend{cache: cache}
	} else {
		b = newMemoryBackend()
	}
	return &Service{backend: b, ttl: ttl, allowDev: allowDev}
}

// Issue generates a 6-digit code for the scope, replacing any previous one.
func (s *Service) Issue(ctx context.Context, scope string) (string, error) {
	code, err := generate()
	if err != nil {
		return "", err
	}
	if err := s.backend.put(ctx, keyPrefix+scope, code, s.ttl); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify checks the code for the scope. A correct code is consumed; a wrong
// code leaves the stored one in place so the user can retry.
func (s *Service) Verify(ctx context.Context, scope, code string) (bool, error) {
	if s.allowDev && code == DevCode {
		return true, nil
	}
	key := keyPrefix + scope
	stored, err := s.backend.get(ctx, key)
	if err != nil {
		return false, err
	}
	if stored == "" || stored != code {
		return false, nil
	}
	if err := s.backend.del(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

func generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type redisBackend struct {
	cache *redis.Client
}

func (r *redisBackend) put(ctx context.Context, key, code string, ttl time.Duration) error {
	return r.cache.Set(ctx, key, code, ttl).Err()
}

func (r *redisBackend) get(ctx context.Context, key string) (string, error) {
	code, err := r.cache.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (r *redisBackend) del(ctx context.Context, key string) error {
	return r.cache.Del(ctx, key).Err()
}

type memoryBackend struct {
	mu    sync.Mutex
	codes map[string]memoryCode
}

type memoryCode struct {
	code      string
	expiresAt time.Time
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{codes: make(map[string]memoryCode)}
}

func (m *memoryBackend) put(_ context.Context, key, code string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[key] = memoryCode{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *memoryBackend) get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.codes[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.code, nil
}

func (m *memoryBackend) del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, key)
	return nil
}
