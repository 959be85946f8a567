package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

type memoryPartners struct {
	mu       sync.RWMutex
	byID     map[string]Partner
	idByPhone map[string]string
}

// NewMemoryPartners builds an in-memory partner repository.
func NewMemoryPartners() Partners {
	return &memoryPartners{byID: make(map[string]Partner), idByPhone: make(map[string]string)}
}

func (r *memoryPartners) Create(_ context.Context, p Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.idByPhone[p.Phone]; exists {
		return errors.New("partner exists")
	}
	r.byID[p.ID] = p
	r.idByPhone[p.Phone] = p.ID
	return nil
}

func (r *memoryPartners) FindByPhone(_ context.Context, phone string) (Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idByPhone[phone]
	if !ok {
		return Partner{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *memoryPartners) FindByID(_ context.Context, id string) (Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return Partner{}, ErrNotFound
	}
	return p, nil
}

func (r *memoryPartners) Update(_ context.Context, p Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[p.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.Phone != p.Phone {
		delete(r.idByPhone, existing.Phone)
		r.idByPhone[p.Phone] = p.ID
	}
	r.byID[p.ID] = p
	return nil
}

func (r *memoryPartners) List(_ context.Context, page, limit int) ([]Partner, int, error) {
	r.mu.RLock()
	all := make([]Partner, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, p)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := len(all)
	start, end := Paginate(total, page, limit)
	return all[start:end], total, nil
}

func (r *memoryPartners) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

type memoryOrders struct {
	mu     sync.RWMutex
	orders map[string]Order
}

// NewMemoryOrders builds an in-memory order repository.
func NewMemoryOrders() Orders {
	return &memoryOrders{orders: make(map[string]Order)}
}

func (r *memoryOrders) Create(_ context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *memoryOrders) Get(_ context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *memoryOrders) Update(_ context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = time.Now().UTC()
	r.orders[o.ID] = o
	return nil
}

func (r *memoryOrders) Claim(_ context.Context, orderID, partnerID string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	if o.Status != OrderPending {
		return Order{}, errors.New("order is no longer available")
	}
	o.Status = OrderAccepted
	o.PartnerID = partnerID
	o.UpdatedAt = time.Now().UTC()
	r.orders[orderID] = o
	return o, nil
}

func (r *memoryOrders) list(filter func(Order) bool, page, limit int) ([]Order, int, error) {
	r.mu.RLock()
	var matched []Order
	for _, o := range r.orders {
		if filter(o) {
			matched = append(matched, o)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start, end := Paginate(total, page, limit)
	return matched[start:end], total, nil
}

func (r *memoryOrders) ListAvailable(_ context.Context, page, limit int) ([]Order, int, error) {
	return r.list(func(o Order) bool { return o.Status == OrderPending }, page, limit)
}

func (r *memoryOrders) ListActive(_ context.Context, partnerID string, page, limit int) ([]Order, int, error) {
	return r.list(func(o Order) bool {
		return o.PartnerID == partnerID && o.Status != OrderPending && o.Status != OrderDelivered
	}, page, limit)
}

func (r *memoryOrders) ListDelivered(_ context.Context, partnerID string, page, limit int) ([]Order, int, error) {
	return r.list(func(o Order) bool {
		return o.PartnerID == partnerID && o.Status == OrderDelivered
	}, page, limit)
}

func (r *memoryOrders) ListByVendor(_ context.Context, vendorID string, page, limit int) ([]Order, int, error) {
	return r.list(func(o Order) bool { return o.VendorID == vendorID }, page, limit)
}

func (r *memoryOrders) Totals(_ context.Context) (int, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var revenue int64
	for _, o := range r.orders {
		if o.Status == OrderDelivered {
			revenue += o.Amount
		}
	}
	return len(r.orders), revenue, nil
}

func (r *memoryOrders) DailySeries(_ context.Context, days int) ([]DailyStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	buckets := make(map[string]*DailyStat, days)
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	for _, o := range r.orders {
		if o.CreatedAt.Before(cutoff) {
			continue
		}
		day := o.CreatedAt.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &DailyStat{Date: day}
			buckets[day] = b
		}
		b.Orders++
		if o.Status == OrderDelivered {
			b.Revenue += o.Amount
		}
	}

	series := make([]DailyStat, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

type memoryWithdrawals struct {
	mu   sync.RWMutex
	rows []Withdrawal
}

// NewMemoryWithdrawals builds an in-memory withdrawal repository.
func NewMemoryWithdrawals() Withdrawals {
	return &memoryWithdrawals{}
}

func (r *memoryWithdrawals) Create(_ context.Context, w Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, w)
	return nil
}

func (r *memoryWithdrawals) ListByPartner(_ context.Context, partnerID string, page, limit int) ([]Withdrawal, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Withdrawal
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].PartnerID == partnerID {
			matched = append(matched, r.rows[i])
		}
	}
	total := len(matched)
	start, end := Paginate(total, page, limit)
	return matched[start:end], total, nil
}
