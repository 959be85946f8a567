package credentials

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/zestro/zestro-go/internal/logging"
)

type testProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestSession(t *testing.T) (*Session, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	return NewSession(kv, PartnerKeys(), logging.Discard()), kv
}

func TestTokenRoundTrip(t *testing.T) {
	s, _ := newTestSession(t)

	if _, ok := s.Token(); ok {
		t.Fatal("token present before SetToken")
	}
	if s.LoggedIn() {
		t.Fatal("logged in before SetToken")
	}

	s.SetToken("abc123")
	token, ok := s.Token()
	if !ok || token != "abc123" {
		t.Fatalf("Token() = %q, %v", token, ok)
	}
	if !s.LoggedIn() {
		t.Fatal("not logged in after SetToken")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s, _ := newTestSession(t)

	s.SetProfile(testProfile{ID: "p1", Name: "Asha"})
	var p testProfile
	if !s.Profile(&p) {
		t.Fatal("Profile() = false after SetProfile")
	}
	if p.ID != "p1" || p.Name != "Asha" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestCorruptProfileReadsAsAbsent(t *testing.T) {
	s, kv := newTestSession(t)

	if err := kv.Set(PartnerKeys().Profile, "{not json"); err != nil {
		t.Fatalf("seed corrupt profile: %v", err)
	}
	var p testProfile
	if s.Profile(&p) {
		t.Fatal("corrupt profile decoded")
	}
}

func TestClearAllRemovesEverySessionKey(t *testing.T) {
	s, kv := newTestSession(t)

	s.SetToken("tok")
	s.SetProfile(testProfile{ID: "p1"})
	s.SetScoped("last_sync", "2026-01-01")
	if err := kv.Set("deliveryRoute", "cached"); err != nil {
		t.Fatalf("seed prefix key: %v", err)
	}
	if err := kv.Set("unrelated", "keep"); err != nil {
		t.Fatalf("seed unrelated key: %v", err)
	}

	s.ClearAll()

	for _, key := range []string{PartnerKeys().Token, PartnerKeys().Profile, "last_sync", "deliveryRoute"} {
		if _, ok := kv.Get(key); ok {
			t.Fatalf("key %q survived ClearAll", key)
		}
	}
	if _, ok := kv.Get("unrelated"); !ok {
		t.Fatal("ClearAll removed a key outside the session scope")
	}
	if s.LoggedIn() {
		t.Fatal("still logged in after ClearAll")
	}

	// Idempotent.
	s.ClearAll()
}

func TestWriteFailuresAreSwallowed(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailWrites = true
	kv.WriteErr = errors.New("disk full")
	s := NewSession(kv, PartnerKeys(), logging.Discard())

	// None of these may panic or surface the error.
	s.SetToken("tok")
	s.SetProfile(testProfile{ID: "p1"})
	s.ClearAll()

	if s.LoggedIn() {
		t.Fatal("logged in despite failed writes")
	}
}

func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "partner.db")
	kv, err := OpenSQLite(path, logging.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	s := NewSession(kv, AdminKeys(), logging.Discard())
	s.SetToken("tok")
	s.SetProfile(testProfile{ID: "a1", Name: "Ops"})

	token, ok := s.Token()
	if !ok || token != "tok" {
		t.Fatalf("Token() = %q, %v", token, ok)
	}
	var p testProfile
	if !s.Profile(&p) || p.ID != "a1" {
		t.Fatalf("profile round trip failed: %+v", p)
	}

	s.ClearAll()
	if s.LoggedIn() {
		t.Fatal("still logged in after ClearAll")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
