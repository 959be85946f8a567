package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zestro/zestro-go/internal/credentials"
	"github.com/zestro/zestro-go/internal/logging"
)

type pong struct {
	Value string `json:"value"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *credentials.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session := credentials.NewSession(credentials.NewMemoryKV(), credentials.PartnerKeys(), logging.Discard())
	client := New(Config{
		BaseURL: srv.URL,
		Session: session,
		Logger:  logging.Discard(),
	})
	return client, session
}

func TestDoDecodesSuccessEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"response":{"value":"hello"}}`))
	})

	env := Get[pong](context.Background(), client, "/ping")
	if !env.Success {
		t.Fatalf("Success = false, message %q", env.Message)
	}
	if env.Response == nil || env.Response.Value != "hello" {
		t.Fatalf("Response = %+v", env.Response)
	}
}

func TestDoAttachesBearerTokenWhenStored(t *testing.T) {
	var got string
	client, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"response":{}}`))
	})

	Get[pong](context.Background(), client, "/first")
	if got != "" {
		t.Fatalf("Authorization sent without a token: %q", got)
	}

	session.SetToken("tok-1")
	Get[pong](context.Background(), client, "/second")
	if got != "Bearer tok-1" {
		t.Fatalf("Authorization = %q, want Bearer tok-1", got)
	}
}

func TestUnauthorizedClearsSessionThenNotifies(t *testing.T) {
	client, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired"}`))
	})
	session.SetToken("stale")
	session.SetProfile(map[string]string{"id": "p1"})

	calls := 0
	client.OnSessionExpired(func() {
		calls++
		// The stale token must already be gone when the app reacts.
		if session.LoggedIn() {
			t.Error("session still logged in inside expiry callback")
		}
	})

	env := Get[pong](context.Background(), client, "/me")
	if env.Success {
		t.Fatal("Success = true on 401")
	}
	if env.Message != "Session expired. Please log in again." {
		t.Fatalf("Message = %q", env.Message)
	}
	if calls != 1 {
		t.Fatalf("expiry callback fired %d times, want 1", calls)
	}
	if session.LoggedIn() {
		t.Fatal("session not cleared after 401")
	}
}

func TestServerFailureMessagePassesThrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"order is no longer available"}`))
	})

	env := Post[pong](context.Background(), client, "/orders/1/accept", nil)
	if env.Success || env.Response != nil {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Message != "order is no longer available" {
		t.Fatalf("Message = %q", env.Message)
	}
}

func TestNonJSONBodyBecomesStatusMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	})

	env := Get[pong](context.Background(), client, "/ping")
	if env.Success {
		t.Fatal("Success = true for HTML error page")
	}
	if env.Message != "Server error (502). Please try again later." {
		t.Fatalf("Message = %q", env.Message)
	}
}

func TestSuccessFlagForcedFalseOnErrorStatus(t *testing.T) {
	// A buggy backend may return success:true with a 4xx status; the wrapper
	// trusts the status code.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":true,"response":{"value":"x"}}`))
	})

	env := Get[pong](context.Background(), client, "/ping")
	if env.Success || env.Response != nil {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Message != "Request failed (400)." {
		t.Fatalf("Message = %q", env.Message)
	}
}

func TestNetworkErrorBecomesFailureEnvelope(t *testing.T) {
	session := credentials.NewSession(credentials.NewMemoryKV(), credentials.PartnerKeys(), logging.Discard())
	client := New(Config{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Session: session,
		Logger:  logging.Discard(),
	})

	env := Get[pong](context.Background(), client, "/ping")
	if env.Success {
		t.Fatal("Success = true on connection failure")
	}
	if env.Message != "Network error. Please check your connection." {
		t.Fatalf("Message = %q", env.Message)
	}
}

func TestPaged(t *testing.T) {
	if got := Paged("/orders", 2, 10); got != "/orders?page=2&limit=10" {
		t.Fatalf("Paged = %q", got)
	}
	if got := Paged("/reviews?productId=p1", 1, 5); got != "/reviews?productId=p1&page=1&limit=5" {
		t.Fatalf("Paged with query = %q", got)
	}
}
