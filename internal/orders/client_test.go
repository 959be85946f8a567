package orders

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/zestro/zestro-go/internal/api"
	"github.com/zestro/zestro-go/internal/credentials"
	"github.com/zestro/zestro-go/internal/logging"
)

func newTestOrders(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session := credentials.NewSession(credentials.NewMemoryKV(), credentials.PartnerKeys(), logging.Discard())
	session.SetToken("tok")
	return NewClient(api.New(api.Config{BaseURL: srv.URL, Session: session, Logger: logging.Discard()}))
}

func TestAvailableCarriesPaginationThrough(t *testing.T) {
	client := newTestOrders(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/delivery-partner/orders/available" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "5" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"success":true,"response":{
			"data":[{"id":"o6","status":"pending","deliveryFee":4000}],
			"total":6,"page":2,"hasMore":false
		}}`)
	})

	env := client.Available(context.Background(), 2, 5)
	if !env.Success || env.Response == nil {
		t.Fatalf("available: %+v", env)
	}
	page := env.Response
	if page.Total != 6 || page.Page != 2 || page.HasMore {
		t.Fatalf("page meta: %+v", page)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "o6" || page.Data[0].DeliveryFee != 4000 {
		t.Fatalf("page data: %+v", page.Data)
	}
}

// Concurrent accepts of the same order: the server awards it once; every
// other caller gets a conflict envelope, not an error or a panic.
func TestConcurrentAcceptYieldsOneWinner(t *testing.T) {
	var claimed atomic.Bool
	client := newTestOrders(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/delivery-partner/orders/o1/accept" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if claimed.Swap(true) {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `{"success":false,"message":"order is no longer available"}`)
			return
		}
		fmt.Fprint(w, `{"success":true,"response":{"orderId":"o1","status":"accepted"}}`)
	})

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan api.Envelope[ActionResult], callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- client.Accept(context.Background(), "o1")
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for env := range results {
		if env.Success {
			wins++
			if env.Response.Status != StatusAccepted {
				t.Errorf("winner status = %q", env.Response.Status)
			}
		} else if env.Message != "order is no longer available" {
			t.Errorf("loser message = %q", env.Message)
		}
	}
	if wins != 1 {
		t.Fatalf("accept won %d times, want exactly 1", wins)
	}
}

func TestLifecycleActionsHitTheRightPaths(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	client := newTestOrders(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		fmt.Fprint(w, `{"success":true,"response":{"orderId":"o1","status":"ok"}}`)
	})

	ctx := context.Background()
	client.InitiatePickup(ctx, "o1")
	client.VerifyPickupOTP(ctx, "o1", "123456")
	client.InitiateDelivery(ctx, "o1")
	client.VerifyDeliveryOTP(ctx, "o1", "123456")

	want := []string{
		"/delivery-partner/orders/o1/initiate-pickup",
		"/delivery-partner/orders/o1/verify-pickup",
		"/delivery-partner/orders/o1/initiate-delivery",
		"/delivery-partner/orders/o1/verify-delivery",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Fatalf("path[%d] = %q, want %q", i, paths[i], p)
		}
	}
}
