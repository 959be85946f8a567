package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Content holds the seeded dashboard and storefront data the stub server
// moderates: admin accounts, customers, vendors, catalog, events, reviews,
// coupons. It is memory-only demo data; the contract under test is the HTTP
// surface, not its persistence.
type Content struct {
	mu sync.RWMutex

	admins     map[string]Admin
	customers  map[string]Customer
	vendors    map[string]Vendor
	products   map[string]Product
	categories map[string]Category
	banners    map[string]Banner
	events     map[string]Event
	reviews    []Review
	coupons    map[string]Coupon
}

// DefaultAdminEmail and DefaultAdminPassword are the seeded dashboard login.
const (
	DefaultAdminEmail    = "admin@zestro.test"
	DefaultAdminPassword = "admin123"
)

// NewContent builds the content store with seed data.
func NewContent() *Content {
	c := &Content{
		admins:     make(map[string]Admin),
		customers:  make(map[string]Customer),
		vendors:    make(map[string]Vendor),
		products:   make(map[string]Product),
		categories: make(map[string]Category),
		banners:    make(map[string]Banner),
		events:     make(map[string]Event),
		coupons:    make(map[string]Coupon),
	}
	c.seed()
	return c
}

func (c *Content) seed() {
	hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	admin := Admin{ID: uuid.NewString(), Name: "Ops Admin", Email: DefaultAdminEmail, Role: "superadmin", PasswordHash: hash}
	c.admins[admin.ID] = admin

	now := time.Now().UTC()
	for _, v := range []Vendor{
		{Name: "Annapurna Kitchen", Phone: "9811110001", KYCStatus: KYCApproved, Open: true},
		{Name: "Spice Route", Phone: "9811110002", KYCStatus: KYCPending, Open: false},
		{Name: "Green Bowl", Phone: "9811110003", KYCStatus: KYCApproved, Open: true},
	} {
		v.ID = uuid.NewString()
		v.CreatedAt = now
		c.vendors[v.ID] = v
	}
	for _, u := range []Customer{
		{Name: "Asha", Phone: "9822220001"},
		{Name: "Ravi", Phone: "9822220002"},
		{Name: "Meena", Phone: "9822220003", Blocked: true},
	} {
		u.ID = uuid.NewString()
		u.CreatedAt = now
		c.customers[u.ID] = u
	}

	veg := Category{ID: uuid.NewString(), Name: "Vegetarian", Active: true}
	snacks := Category{ID: uuid.NewString(), Name: "Snacks", Active: true}
	c.categories[veg.ID] = veg
	c.categories[snacks.ID] = snacks

	var vendorID string
	for id := range c.vendors {
		vendorID = id
		break
	}
	for _, p := range []Product{
		{Name: "Paneer Thali", CategoryID: veg.ID, Price: 22000, InStock: true, Rating: 4.4},
		{Name: "Samosa (2pc)", CategoryID: snacks.ID, Price: 4000, InStock: true, Rating: 4.1},
	} {
		p.ID = uuid.NewString()
		p.VendorID = vendorID
		c.products[p.ID] = p
	}

	banner := Banner{ID: uuid.NewString(), Title: "Free delivery weekend", Active: true}
	c.banners[banner.ID] = banner

	c.coupons["WELCOME50"] = Coupon{Code: "WELCOME50", Discount: 5000, MinOrder: 20000, Active: true}
}

// FindAdminByEmail looks up an admin account by email (case-insensitive).
func (c *Content) FindAdminByEmail(email string) (Admin, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.admins {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
}

// FindAdminByID looks up an admin account.
func (c *Content) FindAdminByID(id string) (Admin, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.admins[id]
	if !ok {
		return Admin{}, ErrNotFound
	}
	return a, nil
}

// Customers lists customer accounts, oldest first.
func (c *Content) Customers(page, limit int) ([]Customer, int) {
	c.mu.RLock()
	all := make([]Customer, 0, len(c.customers))
	for _, u := range c.customers {
		all = append(all, u)
	}
	c.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].Phone < all[j].Phone })
	total := len(all)
	start, end := Paginate(total, page, limit)
	return all[start:end], total
}

// CustomerCount returns how many customer accounts exist.
func (c *Content) CustomerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.customers)
}

// SetCustomerBlocked flips the moderation flag.
func (c *Content) SetCustomerBlocked(id string, blocked bool) (Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.customers[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	u.Blocked = blocked
	c.customers[id] = u
	return u, nil
}

// Vendors lists vendor accounts.
func (c *Content) Vendors(page, limit int) ([]Vendor, int) {
	c.mu.RLock()
	all := make([]Vendor, 0, len(c.vendors))
	for _, v := range c.vendors {
		all = append(all, v)
	}
	c.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].Phone < all[j].Phone })
	total := len(all)
	start, end := Paginate(total, page, limit)
	return all[start:end], total
}

// VendorCount returns how many vendor accounts exist.
func (c *Content) VendorCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vendors)
}

// PendingKYCCount counts vendors awaiting adjudication.
func (c *Content) PendingKYCCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, v := range c.vendors {
		if v.KYCStatus == KYCPending {
			n++
		}
	}
	return n
}

// FindVendorByPhone looks up a vendor account.
func (c *Content) FindVendorByPhone(phone string) (Vendor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.vendors {
		if v.Phone == phone {
			return v, nil
		}
	}
	return Vendor{}, ErrNotFound
}

// FindVendorByID looks up a vendor account.
func (c *Content) FindVendorByID(id string) (Vendor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vendors[id]
	if !ok {
		return Vendor{}, ErrNotFound
	}
	return v, nil
}

// UpdateVendor overwrites a vendor record.
func (c *Content) UpdateVendor(v Vendor) (Vendor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.vendors[v.ID]; !ok {
		return Vendor{}, ErrNotFound
	}
	c.vendors[v.ID] = v
	return v, nil
}

// Products lists products, optionally filtered to one vendor.
func (c *Content) Products(vendorID string, page, limit int) ([]Product, int) {
	c.mu.RLock()
	var all []Product
	for _, p := range c.products {
		if vendorID == "" || p.VendorID == vendorID {
			all = append(all, p)
		}
	}
	c.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	start, end := Paginate(total, page, limit)
	return all[start:end], total
}

// FindProduct looks up a product.
func (c *Content) FindProduct(id string) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// UpsertProduct creates or overwrites a product, assigning an ID when empty.
func (c *Content) UpsertProduct(p Product) Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	c.products[p.ID] = p
	return p
}

// DeleteProduct removes a product.
func (c *Content) DeleteProduct(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[id]; !ok {
		return ErrNotFound
	}
	delete(c.products, id)
	return nil
}

// Categories lists categories. When activeOnly is set, inactive ones are
// filtered out (public storefront view).
func (c *Content) Categories(activeOnly bool) []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var all []Category
	for _, cat := range c.categories {
		if !activeOnly || cat.Active {
			all = append(all, cat)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// AddCategory creates a category.
func (c *Content) AddCategory(cat Category) Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	cat.ID = uuid.NewString()
	c.categories[cat.ID] = cat
	return cat
}

// DeleteCategory removes a category.
func (c *Content) DeleteCategory(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.categories[id]; !ok {
		return ErrNotFound
	}
	delete(c.categories, id)
	return nil
}

// Banners lists banners, optionally only active ones.
func (c *Content) Banners(activeOnly bool) []Banner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var all []Banner
	for _, b := range c.banners {
		if !activeOnly || b.Active {
			all = append(all, b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return all
}

// AddBanner creates a banner.
func (c *Content) AddBanner(b Banner) Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	b.ID = uuid.NewString()
	c.banners[b.ID] = b
	return b
}

// DeleteBanner removes a banner.
func (c *Content) DeleteBanner(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.banners[id]; !ok {
		return ErrNotFound
	}
	delete(c.banners, id)
	return nil
}

// Events lists promotional events.
func (c *Content) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	all := make([]Event, 0, len(c.events))
	for _, e := range c.events {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartsAt.Before(all[j].StartsAt) })
	return all
}

// AddEvent schedules an event.
func (c *Content) AddEvent(e Event) Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	e.ID = uuid.NewString()
	c.events[e.ID] = e
	return e
}

// DeleteEvent removes an event.
func (c *Content) DeleteEvent(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.events[id]; !ok {
		return ErrNotFound
	}
	delete(c.events, id)
	return nil
}

// Reviews lists reviews for a product, newest first.
func (c *Content) Reviews(productID string, page, limit int) ([]Review, int) {
	c.mu.RLock()
	var matched []Review
	for i := len(c.reviews) - 1; i >= 0; i-- {
		if c.reviews[i].ProductID == productID {
			matched = append(matched, c.reviews[i])
		}
	}
	c.mu.RUnlock()
	total := len(matched)
	start, end := Paginate(total, page, limit)
	return matched[start:end], total
}

// AddReview appends a review.
func (c *Content) AddReview(r Review) Review {
	c.mu.Lock()
	defer c.mu.Unlock()
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	c.reviews = append(c.reviews, r)
	return r
}

// ValidateCoupon checks a coupon code against an order amount and returns
// the applicable discount.
func (c *Content) ValidateCoupon(code string, amount int64) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coupon, ok := c.coupons[strings.ToUpper(code)]
	if !ok || !coupon.Active || amount < coupon.MinOrder {
		return 0, false
	}
	return coupon.Discount, true
}
