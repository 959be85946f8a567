// Package catalog binds the public browse endpoints: products, categories,
// banners, and product reviews. These work with or without a stored token;
// the wrapper only attaches Authorization when one is present.
package catalog

import (
	"context"
	"time"

	"github.com/zestro/zestro-go/internal/api"
)

// Product is a storefront listing.
type Product struct {
	ID          string  `json:"id"`
	VendorID    string  `json:"vendorId"`
	CategoryID  string  `json:"categoryId,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       int64   `json:"price"`
	InStock     bool    `json:"inStock"`
	Rating      float64 `json:"rating,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Category groups products for browsing.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Active   bool   `json:"active"`
}

// Banner is a promotional tile.
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Active   bool   `json:"active"`
}

// Review is customer feedback on a product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Client is the typed binding for catalog browsing.
type Client struct {
	api *api.Client
}

// NewClient builds the catalog module over the shared request wrapper.
func NewClient(a *api.Client) *Client {
	return &Client{api: a}
}

// Products lists storefront products.
func (c *Client) Products(ctx context.Context, page, limit int) api.Envelope[api.Page[Product]] {
	return api.Get[api.Page[Product]](ctx, c.api, api.Paged("/products", page, limit))
}

// Product fetches a single product.
func (c *Client) Product(ctx context.Context, id string) api.Envelope[Product] {
	return api.Get[Product](ctx, c.api, "/products/"+id)
}

// Categories lists active categories.
func (c *Client) Categories(ctx context.Context) api.Envelope[[]Category] {
	return api.Get[[]Category](ctx, c.api, "/categories")
}

// Banners lists active promotional banners.
func (c *Client) Banners(ctx context.Context) api.Envelope[[]Banner] {
	return api.Get[[]Banner](ctx, c.api, "/banners")
}

// Reviews lists reviews for a product.
func (c *Client) Reviews(ctx context.Context, productID string, page, limit int) api.Envelope[api.Page[Review]] {
	return api.Get[api.Page[Review]](ctx, c.api, api.Paged("/reviews?productId="+productID, page, limit))
}
