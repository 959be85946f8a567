package partnerauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zestro/zestro-go/internal/api"
	"github.com/zestro/zestro-go/internal/credentials"
	"github.com/zestro/zestro-go/internal/logging"
)

func newTestAuth(t *testing.T, handler http.HandlerFunc) (*Client, *credentials.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session := credentials.NewSession(credentials.NewMemoryKV(), credentials.PartnerKeys(), logging.Discard())
	apiClient := api.New(api.Config{BaseURL: srv.URL, Session: session, Logger: logging.Discard()})
	return NewClient(apiClient), session
}

func TestVerifyOTPPersistsSession(t *testing.T) {
	auth, session := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/delivery-partner/auth/verify-otp" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"response":{
			"token":"tok-xyz",
			"partner":{"id":"p1","name":"Asha","phone":"9800000001","kycStatus":"approved","isOnline":false}
		}}`))
	})

	env := auth.VerifyOTP(context.Background(), "9800000001", "123456")
	if !env.Success {
		t.Fatalf("verify failed: %s", env.Message)
	}

	token, ok := session.Token()
	if !ok || token != "tok-xyz" {
		t.Fatalf("stored token = %q, %v", token, ok)
	}
	p, ok := auth.CachedProfile()
	if !ok || p.ID != "p1" || p.KYCStatus != "approved" {
		t.Fatalf("cached profile = %+v, %v", p, ok)
	}
}

func TestFailedVerifyStoresNothing(t *testing.T) {
	auth, session := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"invalid or expired OTP"}`))
	})

	env := auth.VerifyOTP(context.Background(), "9800000001", "000000")
	if env.Success {
		t.Fatal("verify succeeded with wrong OTP")
	}
	if session.LoggedIn() {
		t.Fatal("token stored after failed verify")
	}
}

func TestMeRefreshesStoredProfile(t *testing.T) {
	auth, session := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"response":{"id":"p1","name":"Asha K","phone":"9800000001","kycStatus":"approved","isOnline":true}}`))
	})
	session.SetToken("tok")
	session.SetProfile(Partner{ID: "p1", Name: "Asha"})

	env := auth.Me(context.Background())
	if !env.Success {
		t.Fatalf("me failed: %s", env.Message)
	}
	p, ok := auth.CachedProfile()
	if !ok || p.Name != "Asha K" || !p.IsOnline {
		t.Fatalf("cached profile not refreshed: %+v", p)
	}
}

func TestLogoutClearsSessionEvenOnServerError(t *testing.T) {
	auth, session := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"internal server error"}`))
	})
	session.SetToken("tok")
	session.SetProfile(Partner{ID: "p1"})

	env := auth.Logout(context.Background())
	if env.Success {
		t.Fatal("logout reported success on 500")
	}
	if session.LoggedIn() {
		t.Fatal("credentials survived logout")
	}
	if _, ok := auth.CachedProfile(); ok {
		t.Fatal("profile survived logout")
	}
}

func TestToggleOnlineMergesIntoCachedProfile(t *testing.T) {
	auth, session := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"response":{"isOnline":true}}`))
	})
	session.SetToken("tok")
	session.SetProfile(Partner{ID: "p1", Name: "Asha", IsOnline: false})

	env := auth.ToggleOnline(context.Background())
	if !env.Success || !env.Response.IsOnline {
		t.Fatalf("toggle failed: %+v", env)
	}
	p, ok := auth.CachedProfile()
	if !ok || !p.IsOnline || p.Name != "Asha" {
		t.Fatalf("cached profile after toggle: %+v", p)
	}
}
