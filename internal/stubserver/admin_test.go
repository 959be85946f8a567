package stubserver

import (
	"net/http"
	"testing"

	"github.com/zestro/zestro-go/internal/stubserver/store"
)

func loginAdmin(t *testing.T, srv *Server) string {
	t.Helper()
	status, env := request(t, srv, http.MethodPost, "/admin/login", "", map[string]string{
		"email":    store.DefaultAdminEmail,
		"password": store.DefaultAdminPassword,
	})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("admin login: status=%d env=%+v", status, env)
	}
	var res struct {
		Token string `json:"token"`
		Admin struct {
			Role string `json:"role"`
		} `json:"admin"`
	}
	decodeResponse(t, env, &res)
	if res.Token == "" || res.Admin.Role == "" {
		t.Fatalf("login result: %+v", res)
	}
	return res.Token
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	for _, creds := range []map[string]string{
		{"email": store.DefaultAdminEmail, "password": "wrong"},
		{"email": "nobody@zestro.test", "password": store.DefaultAdminPassword},
	} {
		status, env := request(t, srv, http.MethodPost, "/admin/login", "", creds)
		if status != http.StatusBadRequest || env.Success {
			t.Fatalf("login %v: status=%d env=%+v", creds, status, env)
		}
		if env.Message != "invalid credentials" {
			t.Fatalf("message = %q", env.Message)
		}
	}
}

func TestAdminStatsAndAnalytics(t *testing.T) {
	srv := newTestServer(t)
	token := loginAdmin(t, srv)

	status, env := request(t, srv, http.MethodGet, "/admin/stats", token, nil)
	if status != http.StatusOK {
		t.Fatalf("stats: status=%d", status)
	}
	var stats struct {
		Users      int `json:"users"`
		Vendors    int `json:"vendors"`
		Orders     int `json:"orders"`
		PendingKYC int `json:"pendingKyc"`
	}
	decodeResponse(t, env, &stats)
	if stats.Users != 3 || stats.Vendors != 3 || stats.PendingKYC != 1 {
		t.Fatalf("seeded stats: %+v", stats)
	}
	if stats.Orders < 3 {
		t.Fatalf("orders = %d, want seeded >= 3", stats.Orders)
	}

	status, env = request(t, srv, http.MethodGet, "/admin/analytics?days=7", token, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("analytics: status=%d env=%+v", status, env)
	}
}

func TestAdminModeratesUsers(t *testing.T) {
	srv := newTestServer(t)
	token := loginAdmin(t, srv)

	status, env := request(t, srv, http.MethodGet, "/admin/users?page=1&limit=10", token, nil)
	if status != http.StatusOK {
		t.Fatalf("users: status=%d", status)
	}
	var page struct {
		Data []struct {
			ID      string `json:"id"`
			Blocked bool   `json:"blocked"`
		} `json:"data"`
	}
	decodeResponse(t, env, &page)
	if len(page.Data) == 0 {
		t.Fatal("no seeded users")
	}

	target := page.Data[0]
	status, env = request(t, srv, http.MethodPut, "/admin/users/"+target.ID+"/blocked", token, map[string]bool{"blocked": !target.Blocked})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("block: status=%d env=%+v", status, env)
	}
	var updated struct {
		Blocked bool `json:"blocked"`
	}
	decodeResponse(t, env, &updated)
	if updated.Blocked == target.Blocked {
		t.Fatal("blocked flag did not change")
	}
}

func TestPartnerKYCGatesAcceptance(t *testing.T) {
	srv := newTestServer(t)
	adminToken := loginAdmin(t, srv)
	partnerToken, partnerID := loginPartner(t, srv, "9800000020")
	orderID, _ := firstAvailableOrder(t, srv, partnerToken)

	// Reject the partner's KYC; accepting must now fail with 403.
	status, env := request(t, srv, http.MethodPut, "/admin/partners/"+partnerID+"/kyc", adminToken, map[string]string{"status": store.KYCRejected})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("set kyc: status=%d env=%+v", status, env)
	}

	status, env = request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+"/accept", partnerToken, nil)
	if status != http.StatusForbidden || env.Success {
		t.Fatalf("accept with rejected kyc: status=%d env=%+v", status, env)
	}

	// Approve and retry.
	if status, _ := request(t, srv, http.MethodPut, "/admin/partners/"+partnerID+"/kyc", adminToken, map[string]string{"status": store.KYCApproved}); status != http.StatusOK {
		t.Fatalf("approve kyc: status=%d", status)
	}
	if status, _ := request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+"/accept", partnerToken, nil); status != http.StatusOK {
		t.Fatalf("accept after approval: status=%d", status)
	}
}

func TestAdminContentCRUD(t *testing.T) {
	srv := newTestServer(t)
	token := loginAdmin(t, srv)

	status, env := request(t, srv, http.MethodPost, "/admin/categories", token, map[string]any{
		"name": "Desserts", "active": true,
	})
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("add category: status=%d env=%+v", status, env)
	}
	var cat struct {
		ID string `json:"id"`
	}
	decodeResponse(t, env, &cat)

	// Inactive categories are visible to the admin but hidden publicly.
	status, env = request(t, srv, http.MethodPost, "/admin/categories", token, map[string]any{
		"name": "Hidden", "active": false,
	})
	if status != http.StatusCreated {
		t.Fatalf("add inactive category: status=%d", status)
	}

	var publicCats, adminCats []struct {
		Name string `json:"name"`
	}
	_, env = request(t, srv, http.MethodGet, "/categories", "", nil)
	decodeResponse(t, env, &publicCats)
	_, env = request(t, srv, http.MethodGet, "/admin/categories", token, nil)
	decodeResponse(t, env, &adminCats)
	if len(adminCats) != len(publicCats)+1 {
		t.Fatalf("admin sees %d categories, public %d; want admin = public+1", len(adminCats), len(publicCats))
	}

	status, env = request(t, srv, http.MethodDelete, "/admin/categories/"+cat.ID, token, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("delete category: status=%d env=%+v", status, env)
	}
	status, _ = request(t, srv, http.MethodDelete, "/admin/categories/"+cat.ID, token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("double delete: status=%d, want 404", status)
	}
}
