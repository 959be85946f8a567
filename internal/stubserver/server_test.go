package stubserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/zestro/zestro-go/internal/config"
	"github.com/zestro/zestro-go/internal/logging"
	"github.com/zestro/zestro-go/internal/stubserver/otp"
	"github.com/zestro/zestro-go/internal/stubserver/store"
)

func testConfig() config.Server {
	return config.Server{
		AppName:        "zestro-stub-test",
		AppEnv:         "test",
		Port:           "0",
		LogLevel:       "error",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		OTPTTL:         5 * time.Minute,
		ShutdownPeriod: time.Second,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(context.Background(), Options{
		Config: testConfig(),
		Logger: logging.Discard(),
	})
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

func request(t *testing.T, srv *Server, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, path, &payload)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: non-envelope body: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func decodeResponse(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Response, v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// loginPartner walks the OTP flow with the development code and returns the
// bearer token and partner ID.
func loginPartner(t *testing.T, srv *Server, phone string) (string, string) {
	t.Helper()
	status, env := request(t, srv, http.MethodPost, "/delivery-partner/auth/login", "", map[string]string{"phone": phone})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("login: status=%d env=%+v", status, env)
	}
	status, env = request(t, srv, http.MethodPost, "/delivery-partner/auth/verify-otp", "", map[string]string{
		"phone": phone, "otp": otp.DevCode,
	})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("verify: status=%d env=%+v", status, env)
	}
	var res struct {
		Token   string `json:"token"`
		Partner struct {
			ID        string `json:"id"`
			KYCStatus string `json:"kycStatus"`
		} `json:"partner"`
	}
	decodeResponse(t, env, &res)
	if res.Token == "" {
		t.Fatal("verify returned no token")
	}
	return res.Token, res.Partner.ID
}

func TestHealthUsesEnvelope(t *testing.T) {
	srv := newTestServer(t)
	status, env := request(t, srv, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("health: status=%d env=%+v", status, env)
	}
}

func TestErrorsUseEnvelope(t *testing.T) {
	srv := newTestServer(t)

	status, env := request(t, srv, http.MethodGet, "/products/nope", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if env.Success || env.Message == "" {
		t.Fatalf("error envelope: %+v", env)
	}
}

func TestPartnerLoginFlow(t *testing.T) {
	srv := newTestServer(t)
	token, _ := loginPartner(t, srv, "9800000010")

	status, env := request(t, srv, http.MethodGet, "/delivery-partner/auth/me", token, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("me: status=%d env=%+v", status, env)
	}
	var p struct {
		Phone     string `json:"phone"`
		KYCStatus string `json:"kycStatus"`
	}
	decodeResponse(t, env, &p)
	if p.Phone != "9800000010" {
		t.Fatalf("me phone = %q", p.Phone)
	}
	// Development servers approve KYC on onboarding.
	if p.KYCStatus != store.KYCApproved {
		t.Fatalf("kycStatus = %q", p.KYCStatus)
	}
}

func TestWrongOTPRejectedWithoutSessionSemantics(t *testing.T) {
	srv := newTestServer(t)
	status, env := request(t, srv, http.MethodPost, "/delivery-partner/auth/login", "", map[string]string{"phone": "9800000011"})
	if status != http.StatusOK {
		t.Fatalf("login status = %d", status)
	}

	// A wrong code must not be a 401: the client would treat that as an
	// expired session.
	status, env = request(t, srv, http.MethodPost, "/delivery-partner/auth/verify-otp", "", map[string]string{
		"phone": "9800000011", "otp": "000000",
	})
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("wrong otp: status=%d env=%+v", status, env)
	}

	// And it must not consume the pending login.
	status, _ = request(t, srv, http.MethodPost, "/delivery-partner/auth/verify-otp", "", map[string]string{
		"phone": "9800000011", "otp": otp.DevCode,
	})
	if status != http.StatusOK {
		t.Fatalf("retry with dev code: status=%d", status)
	}
}

func TestBearerRequiredAndRoleScoped(t *testing.T) {
	srv := newTestServer(t)

	status, _ := request(t, srv, http.MethodGet, "/delivery-partner/auth/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", status)
	}

	status, _ = request(t, srv, http.MethodGet, "/delivery-partner/auth/me", "garbage.token.here", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d, want 401", status)
	}

	partnerToken, _ := loginPartner(t, srv, "9800000012")
	status, _ = request(t, srv, http.MethodGet, "/admin/stats", partnerToken, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("partner token on admin route: status = %d, want 401", status)
	}
}

func firstAvailableOrder(t *testing.T, srv *Server, token string) (string, int64) {
	t.Helper()
	status, env := request(t, srv, http.MethodGet, "/delivery-partner/orders/available", token, nil)
	if status != http.StatusOK {
		t.Fatalf("available: status=%d", status)
	}
	var page struct {
		Data []struct {
			ID          string `json:"id"`
			DeliveryFee int64  `json:"deliveryFee"`
		} `json:"data"`
		Total int `json:"total"`
	}
	decodeResponse(t, env, &page)
	if len(page.Data) == 0 {
		t.Fatal("no seeded orders available")
	}
	return page.Data[0].ID, page.Data[0].DeliveryFee
}

func TestOrderLifecycleCreditsWallet(t *testing.T) {
	srv := newTestServer(t)
	token, _ := loginPartner(t, srv, "9800000013")
	orderID, fee := firstAvailableOrder(t, srv, token)

	steps := []struct {
		path string
		body any
	}{
		{"/accept", nil},
		{"/initiate-pickup", nil},
		{"/verify-pickup", map[string]string{"otp": otp.DevCode}},
		{"/initiate-delivery", nil},
		{"/verify-delivery", map[string]string{"otp": otp.DevCode}},
	}
	for _, step := range steps {
		status, env := request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+step.path, token, step.body)
		if status != http.StatusOK || !env.Success {
			t.Fatalf("%s: status=%d env=%+v", step.path, status, env)
		}
	}

	status, env := request(t, srv, http.MethodGet, "/delivery-partner/orders/"+orderID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("get order: status=%d", status)
	}
	var o struct {
		Status string `json:"status"`
	}
	decodeResponse(t, env, &o)
	if o.Status != store.OrderDelivered {
		t.Fatalf("order status = %q, want delivered", o.Status)
	}

	status, env = request(t, srv, http.MethodGet, "/delivery-partner/wallet/balance", token, nil)
	if status != http.StatusOK {
		t.Fatalf("balance: status=%d", status)
	}
	var b struct {
		Amount int64 `json:"amount"`
	}
	decodeResponse(t, env, &b)
	if b.Amount != fee {
		t.Fatalf("balance = %d, want %d", b.Amount, fee)
	}

	status, env = request(t, srv, http.MethodGet, "/delivery-partner/earnings", token, nil)
	if status != http.StatusOK {
		t.Fatalf("earnings: status=%d", status)
	}
	var sum struct {
		Today      int64 `json:"today"`
		Lifetime   int64 `json:"lifetime"`
		Deliveries int   `json:"deliveries"`
	}
	decodeResponse(t, env, &sum)
	if sum.Deliveries != 1 || sum.Lifetime != fee || sum.Today != fee {
		t.Fatalf("earnings summary: %+v", sum)
	}
}

func TestLifecycleStepsEnforceOrder(t *testing.T) {
	srv := newTestServer(t)
	token, _ := loginPartner(t, srv, "9800000014")
	orderID, _ := firstAvailableOrder(t, srv, token)

	// Pickup before accept.
	status, _ := request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+"/initiate-pickup", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("pickup before accept: status = %d, want 404 (not yet assigned)", status)
	}

	if status, _ := request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+"/accept", token, nil); status != http.StatusOK {
		t.Fatalf("accept: status=%d", status)
	}

	// Delivery before pickup.
	status, _ = request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+"/initiate-delivery", token, nil)
	if status != http.StatusConflict {
		t.Fatalf("delivery before pickup: status = %d, want 409", status)
	}
}

func TestDoubleAcceptConflicts(t *testing.T) {
	srv := newTestServer(t)
	first, _ := loginPartner(t, srv, "9800000015")
	second, _ := loginPartner(t, srv, "9800000016")
	orderID, _ := firstAvailableOrder(t, srv, first)

	if status, _ := request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+"/accept", first, nil); status != http.StatusOK {
		t.Fatalf("first accept: status=%d", status)
	}
	status, env := request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+"/accept", second, nil)
	if status != http.StatusConflict || env.Success {
		t.Fatalf("second accept: status=%d env=%+v", status, env)
	}
}

func TestWithdrawalsRequireBalance(t *testing.T) {
	srv := newTestServer(t)
	token, _ := loginPartner(t, srv, "9800000017")

	status, env := request(t, srv, http.MethodPost, "/delivery-partner/wallet/withdraw", token, map[string]int64{"amount": 5000})
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("withdraw with empty wallet: status=%d env=%+v", status, env)
	}

	// Earn once, then withdraw within balance.
	orderID, fee := firstAvailableOrder(t, srv, token)
	for _, step := range []struct {
		path string
		body any
	}{
		{"/accept", nil},
		{"/initiate-pickup", nil},
		{"/verify-pickup", map[string]string{"otp": otp.DevCode}},
		{"/initiate-delivery", nil},
		{"/verify-delivery", map[string]string{"otp": otp.DevCode}},
	} {
		if status, env := request(t, srv, http.MethodPost, "/delivery-partner/orders/"+orderID+step.path, token, step.body); status != http.StatusOK {
			t.Fatalf("%s: status=%d env=%+v", step.path, status, env)
		}
	}

	status, env = request(t, srv, http.MethodPost, "/delivery-partner/wallet/withdraw", token, map[string]int64{"amount": fee})
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("withdraw: status=%d env=%+v", status, env)
	}
	var wd struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
	}
	decodeResponse(t, env, &wd)
	if wd.Status != "approved" || wd.Reference == "" {
		t.Fatalf("withdrawal: %+v", wd)
	}

	status, env = request(t, srv, http.MethodGet, "/delivery-partner/wallet/balance", token, nil)
	if status != http.StatusOK {
		t.Fatalf("balance: status=%d", status)
	}
	var b struct {
		Amount int64 `json:"amount"`
	}
	decodeResponse(t, env, &b)
	if b.Amount != 0 {
		t.Fatalf("balance after withdrawal = %d, want 0", b.Amount)
	}
}

func TestPaginationHasMore(t *testing.T) {
	srv := newTestServer(t)
	token, _ := loginPartner(t, srv, "9800000018")

	status, env := request(t, srv, http.MethodGet, "/delivery-partner/orders/available?page=1&limit=2", token, nil)
	if status != http.StatusOK {
		t.Fatalf("page 1: status=%d", status)
	}
	var page struct {
		Data    []json.RawMessage `json:"data"`
		Total   int               `json:"total"`
		Page    int               `json:"page"`
		HasMore bool              `json:"hasMore"`
	}
	decodeResponse(t, env, &page)
	if page.Total < 3 {
		t.Fatalf("seeded total = %d, want >= 3", page.Total)
	}
	if len(page.Data) != 2 || !page.HasMore || page.Page != 1 {
		t.Fatalf("page 1: %+v", page)
	}

	lastPage := (page.Total + 1) / 2
	status, env = request(t, srv, http.MethodGet,
		fmt.Sprintf("/delivery-partner/orders/available?page=%d&limit=2", lastPage), token, nil)
	if status != http.StatusOK {
		t.Fatalf("last page: status=%d", status)
	}
	decodeResponse(t, env, &page)
	if page.HasMore {
		t.Fatalf("hasMore true on last page: %+v", page)
	}
}
