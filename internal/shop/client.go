// Package shop binds the customer-side endpoints: orders, addresses, coupon
// validation, and notifications. All of these require a stored customer
// token.
package shop

import (
	"context"
	"time"

	"github.com/zestro/zestro-go/internal/api"
)

// Order is the customer's view of a placed order.
type Order struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"`
	Items     int       `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// Address is a saved delivery address.
type Address struct {
	ID      string `json:"id,omitempty"`
	Label   string `json:"label"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Default bool   `json:"default,omitempty"`
}

// CouponResult is the outcome of validating a coupon against an order total.
type CouponResult struct {
	Code     string `json:"code"`
	Valid    bool   `json:"valid"`
	Discount int64  `json:"discount"`
}

// Notification is an in-app message.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client is the typed binding for customer shop operations.
type Client struct {
	api *api.Client
}

// NewClient builds the shop module over the shared request wrapper.
func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// Orders lists the customer's orders.
func (c *Client) Orders(ctx context.Context, page, limit int) api.Envelope[api.Page[Order]] {
	return api.Get[api.Page[Order]](ctx, c.api, api.Paged("/orders", page, limit))
}

// Addresses lists saved addresses.
func (c *Client) Addresses(ctx context.Context) api.Envelope[[]Address] {
	return api.Get[[]Address](ctx, c.api, "/addresses")
}

// AddAddress saves a new address.
func (c *Client) AddAddress(ctx context.Context, a Address) api.Envelope[Address] {
	return api.Post[Address](ctx, c.api, "/addresses", a)
}

// DeleteAddress removes a saved address.
func (c *Client) DeleteAddress(ctx context.Context, id string) api.Envelope[struct{}] {
	return api.Delete[struct{}](ctx, c.api, "/addresses/"+id)
}

// ValidateCoupon checks a coupon code against an order amount.
func (c *Client) ValidateCoupon(ctx context.Context, code string, orderAmount int64) api.Envelope[CouponResult] {
	return api.Post[CouponResult](ctx, c.api, "/coupons/validate", map[string]any{
		"code":   code,
		"amount": orderAmount,
	})
}

// Notifications lists in-app notifications, newest first.
func (c *Client) Notifications(ctx context.Context, page, limit int) api.Envelope[api.Page[Notification]] {
	return api.Get[api.Page[Notification]](ctx, c.api, api.Paged("/notifications", page, limit))
}
