// Package orders binds the delivery partner order endpoints. The order
// lifecycle is enforced server-side; illegal transitions come back as plain
// failure envelopes with the server's message.
package orders

import (
	"context"

	"github.com/zestro/zestro-go/internal/api"
)

const basePath = "/delivery-partner/orders"

// Client is the typed binding for partner order operations.
type Client struct {
	api *api.Client
}

// NewClient builds the orders module over the shared request wrapper.
func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// Available lists unassigned orders the partner can accept.
func (c *Client) Available(ctx context.Context, page, limit int) api.Envelope[api.Page[Order]] {
	return api.Get[api.Page[Order]](ctx, c.api, api.Paged(basePath+"/available", page, limit))
}

// Active lists the partner's in-flight orders.
func (c *Client) Active(ctx context.Context, page, limit int) api.Envelope[api.Page[Order]] {
	return api.Get[api.Page[Order]](ctx, c.api, api.Paged(basePath+"/active", page, limit))
}

// History lists completed orders.
func (c *Client) History(ctx context.Context, page, limit int) api.Envelope[api.Page[Order]] {
	return api.Get[api.Page[Order]](ctx, c.api, api.Paged(basePath+"/history", page, limit))
}

// Get fetches a single order.
func (c *Client) Get(ctx context.Context, id string) api.Envelope[Order] {
	return api.Get[Order](ctx, c.api, basePath+"/"+id)
}

// Accept claims an available order.
func (c *Client) Accept(ctx context.Context, id string) api.Envelope[ActionResult] {
	return api.Post[ActionResult](ctx, c.api, basePath+"/"+id+"/accept", nil)
}

// InitiatePickup asks the server to issue a pickup OTP to the vendor.
func (c *Client) InitiatePickup(ctx context.Context, id string) api.Envelope[ActionResult] {
	return api.Post[ActionResult](ctx, c.api, basePath+"/"+id+"/initiate-pickup", nil)
}

// VerifyPickupOTP confirms pickup with the vendor's OTP.
func (c *Client) VerifyPickupOTP(ctx context.Context, id, otp string) api.Envelope[ActionResult] {
	return api.Post[ActionResult](ctx, c.api, basePath+"/"+id+"/verify-pickup", map[string]string{"otp": otp})
}

// InitiateDelivery asks the server to issue a delivery OTP to the customer.
func (c *Client) InitiateDelivery(ctx context.Context, id string) api.Envelope[ActionResult] {
	return api.Post[ActionResult](ctx, c.api, basePath+"/"+id+"/initiate-delivery", nil)
}

// VerifyDeliveryOTP confirms delivery with the customer's OTP.
func (c *Client) VerifyDeliveryOTP(ctx context.Context, id, otp string) api.Envelope[ActionResult] {
	return api.Post[ActionResult](ctx, c.api, basePath+"/"+id+"/verify-delivery", map[string]string{"otp": otp})
}
