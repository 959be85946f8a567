// Package store holds the stub server's repositories. Core flow data
// (partners, orders, withdrawals) has both in-memory and Postgres
// implementations, selected by configuration; dashboard content is seeded
// in-memory demo data.
package store

import "context"

// Partners persists delivery partner accounts.
type Partners interface {
	Create(ctx context.Context, p Partner) error
	FindByPhone(ctx context.Context, phone string) (Partner, error)
	FindByID(ctx context.Context, id string) (Partner, error)
	Update(ctx context.Context, p Partner) error
	List(ctx context.Context, page, limit int) ([]Partner, int, error)
	Count(ctx context.Context) (int, error)
}

// Orders persists delivery jobs.
type Orders interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	Update(ctx context.Context, o Order) error
	// Claim atomically assigns a pending order to a partner. It fails when
	// the order is no longer pending, which is what turns a double accept
	// into a clean business error.
	Claim(ctx context.Context, orderID, partnerID string) (Order, error)
	ListAvailable(ctx context.Context, page, limit int) ([]Order, int, error)
	ListActive(ctx context.Context, partnerID string, page, limit int) ([]Order, int, error)
	ListDelivered(ctx context.Context, partnerID string, page, limit int) ([]Order, int, error)
	ListByVendor(ctx context.Context, vendorID string, page, limit int) ([]Order, int, error)
	Totals(ctx context.Context) (count int, revenue int64, err error)
	DailySeries(ctx context.Context, days int) ([]DailyStat, error)
}

// Withdrawals persists partner payout requests.
type Withdrawals interface {
	Create(ctx context.Context, w Withdrawal) error
	ListByPartner(ctx context.Context, partnerID string, page, limit int) ([]Withdrawal, int, error)
}

// Paginate clamps paging inputs and returns the slice window for an
// in-memory listing of n records.
func Paginate(n, page, limit int) (start, end int) {
	start = (page - 1) * limit
	if start >= n {
		return 0, 0
	}
	end = start + limit
	if end > n {
		end = n
	}
	return start, end
}

// NormalizePaging applies the defaults handlers use for page/limit query
// parameters.
func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
