// Package wallet binds the delivery partner wallet endpoints.
package wallet

import (
	"context"
	"time"

	"github.com/zestro/zestro-go/internal/api"
)

const basePath = "/delivery-partner/wallet"

// Balance is the partner's available balance in minor currency units.
type Balance struct {
	Amount int64     `json:"amount"`
	AsOf   time.Time `json:"asOf"`
}

// Transaction is one wallet movement, credit or debit.
type Transaction struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Amount    int64     `json:"amount"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Withdrawal is a payout request and its processor status.
type Withdrawal struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client is the typed binding for wallet operations.
type Client struct {
	api *api.Client
}

// NewClient builds the wallet module over the shared request wrapper.
func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// Balance fetches the current balance.
func (c *Client) Balance(ctx context.Context) api.Envelope[Balance] {
	return api.Get[Balance](ctx, c.api, basePath+"/balance")
}

// Transactions lists wallet movements, newest first.
func (c *Client) Transactions(ctx context.Context, page, limit int) api.Envelope[api.Page[Transaction]] {
	return api.Get[api.Page[Transaction]](ctx, c.api, api.Paged(basePath+"/transactions", page, limit))
}

// Withdraw requests a payout of the given amount.
func (c *Client) Withdraw(ctx context.Context, amount int64) api.Envelope[Withdrawal] {
	return api.Post[Withdrawal](ctx, c.api, basePath+"/withdraw", map[string]int64{"amount": amount})
}

// Withdrawals lists past payout requests.
func (c *Client) Withdrawals(ctx context.Context, page, limit int) api.Envelope[api.Page[Withdrawal]] {
	return api.Get[api.Page[Withdrawal]](ctx, c.api, api.Paged(basePath+"/withdrawals", page, limit))
}
