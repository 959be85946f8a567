package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestClaimIsExclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrders()
	if err := repo.Create(ctx, Order{ID: "o1", Status: OrderPending, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	const racers = 16
	var wg sync.WaitGroup
	wins := make(chan string, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(partner string) {
			defer wg.Done()
			if _, err := repo.Claim(ctx, "o1", partner); err == nil {
				wins <- partner
			}
		}(fmt.Sprintf("p%d", i))
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	if len(winners) != 1 {
		t.Fatalf("claim won by %d partners, want exactly 1", len(winners))
	}

	o, err := repo.Get(ctx, "o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if o.Status != OrderAccepted || o.PartnerID != winners[0] {
		t.Fatalf("order after race: %+v", o)
	}
}

func TestClaimRejectsNonPending(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrders()
	if err := repo.Create(ctx, Order{ID: "o1", Status: OrderDelivered}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Claim(ctx, "o1", "p1"); err == nil {
		t.Fatal("claimed a delivered order")
	}
	if _, err := repo.Claim(ctx, "missing", "p1"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListsFilterByPartnerAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrders()
	now := time.Now().UTC()
	seed := []Order{
		{ID: "o1", Status: OrderPending, CreatedAt: now.Add(-3 * time.Minute)},
		{ID: "o2", Status: OrderAccepted, PartnerID: "p1", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "o3", Status: OrderDelivered, PartnerID: "p1", CreatedAt: now.Add(-1 * time.Minute)},
		{ID: "o4", Status: OrderAccepted, PartnerID: "p2", CreatedAt: now},
	}
	for _, o := range seed {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create %s: %v", o.ID, err)
		}
	}

	available, total, err := repo.ListAvailable(ctx, 1, 10)
	if err != nil || total != 1 || available[0].ID != "o1" {
		t.Fatalf("available: %v total=%d err=%v", available, total, err)
	}

	active, total, err := repo.ListActive(ctx, "p1", 1, 10)
	if err != nil || total != 1 || active[0].ID != "o2" {
		t.Fatalf("active: %v total=%d err=%v", active, total, err)
	}

	done, total, err := repo.ListDelivered(ctx, "p1", 1, 10)
	if err != nil || total != 1 || done[0].ID != "o3" {
		t.Fatalf("delivered: %v total=%d err=%v", done, total, err)
	}
}

func TestPaginateWindows(t *testing.T) {
	cases := []struct {
		n, page, limit, start, end int
	}{
		{10, 1, 3, 0, 3},
		{10, 4, 3, 9, 10},
		{10, 5, 3, 0, 0}, // past the end
		{0, 1, 10, 0, 0},
	}
	for _, tc := range cases {
		start, end := Paginate(tc.n, tc.page, tc.limit)
		if start != tc.start || end != tc.end {
			t.Fatalf("Paginate(%d,%d,%d) = %d,%d want %d,%d",
				tc.n, tc.page, tc.limit, start, end, tc.start, tc.end)
		}
	}
}

func TestNormalizePaging(t *testing.T) {
	if p, l := NormalizePaging(0, 0); p != 1 || l != 10 {
		t.Fatalf("NormalizePaging(0,0) = %d,%d", p, l)
	}
	if p, l := NormalizePaging(3, 500); p != 3 || l != 100 {
		t.Fatalf("NormalizePaging(3,500) = %d,%d", p, l)
	}
}
