// Package earnings binds the delivery partner earnings endpoints.
package earnings

import (
	"context"
	"time"

	"github.com/zestro/zestro-go/internal/api"
)

const basePath = "/delivery-partner/earnings"

// Summary aggregates earnings over the standard reporting windows.
type Summary struct {
	Today      int64 `json:"today"`
	ThisWeek   int64 `json:"thisWeek"`
	ThisMonth  int64 `json:"thisMonth"`
	Lifetime   int64 `json:"lifetime"`
	Deliveries int   `json:"deliveries"`
}

// Entry is one credited delivery in the earnings history.
type Entry struct {
	OrderID   string    `json:"orderId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client is the typed binding for earnings operations.
type Client struct {
	api *api.Client
}

// NewClient builds the earnings module over the shared request wrapper.
func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// Get fetches the earnings summary.
func (c *Client) Get(ctx context.Context) api.Envelope[Summary] {
	return api.Get[Summary](ctx, c.api, basePath)
}

// History lists credited deliveries, newest first.
func (c *Client) History(ctx context.Context, page, limit int) api.Envelope[api.Page[Entry]] {
	return api.Get[api.Page[Entry]](ctx, c.api, api.Paged(basePath+"/history", page, limit))
}
