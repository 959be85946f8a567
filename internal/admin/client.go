// Package admin binds the dashboard endpoints: moderation, KYC adjudication,
// content CRUD, and analytics. The admin app keeps its session under its own
// credential keys, separate from the partner app.
package admin

import (
	"context"
	"fmt"

	"github.com/zestro/zestro-go/internal/api"
	"github.com/zestro/zestro-go/internal/catalog"
	"github.com/zestro/zestro-go/internal/credentials"
)

const basePath = "/admin"

// Client is the typed binding for admin operations.
type Client struct {
	api  *api.Client
	sess *credentials.Session
}

// NewClient builds the admin module over the shared request wrapper.
func NewClient(a *api.Client) *Client {
	return &Client{api: a, sess: a.Session()}
}

// Login exchanges email/password for an admin session. On success the token
// and account snapshot are persisted together.
func (c *Client) Login(ctx context.Context, email, password string) api.Envelope[LoginResult] {
	env := api.Post[LoginResult](ctx, c.api, basePath+"/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if env.Success && env.Response != nil {
		c.sess.SetToken(env.Response.Token)
		c.sess.SetProfile(env.Response.Admin)
	}
	return env
}

// Me refreshes and persists the admin account snapshot.
func (c *Client) Me(ctx context.Context) api.Envelope[Account] {
	env := api.Get[Account](ctx, c.api, basePath+"/me")
	if env.Success && env.Response != nil {
		c.sess.SetProfile(*env.Response)
	}
	return env
}

// Logout clears the local admin session. There is no server-side admin
// logout endpoint; the token simply expires.
func (c *Client) Logout() {
	c.sess.ClearAll()
}

// Users lists customer accounts.
func (c *Client) Users(ctx context.Context, page, limit int) api.Envelope[api.Page[User]] {
	return api.Get[api.Page[User]](ctx, c.api, api.Paged(basePath+"/users", page, limit))
}

// SetUserBlocked blocks or unblocks a customer account.
func (c *Client) SetUserBlocked(ctx context.Context, id string, blocked bool) api.Envelope[User] {
	return api.Put[User](ctx, c.api, basePath+"/users/"+id+"/blocked", map[string]bool{"blocked": blocked})
}

// Vendors lists vendor accounts.
func (c *Client) Vendors(ctx context.Context, page, limit int) api.Envelope[api.Page[Vendor]] {
	return api.Get[api.Page[Vendor]](ctx, c.api, api.Paged(basePath+"/vendors", page, limit))
}

// SetVendorKYC adjudicates a vendor's KYC status (approved/rejected).
func (c *Client) SetVendorKYC(ctx context.Context, id, status string) api.Envelope[Vendor] {
	return api.Put[Vendor](ctx, c.api, basePath+"/vendors/"+id+"/kyc", map[string]string{"status": status})
}

// Partners lists delivery partner accounts.
func (c *Client) Partners(ctx context.Context, page, limit int) api.Envelope[api.Page[Partner]] {
	return api.Get[api.Page[Partner]](ctx, c.api, api.Paged(basePath+"/partners", page, limit))
}

// SetPartnerKYC adjudicates a delivery partner's KYC status.
func (c *Client) SetPartnerKYC(ctx context.Context, id, status string) api.Envelope[Partner] {
	return api.Put[Partner](ctx, c.api, basePath+"/partners/"+id+"/kyc", map[string]string{"status": status})
}

// Categories lists all categories, including inactive ones.
func (c *Client) Categories(ctx context.Context) api.Envelope[[]catalog.Category] {
	return api.Get[[]catalog.Category](ctx, c.api, basePath+"/categories")
}

// AddCategory creates a category.
func (c *Client) AddCategory(ctx context.Context, in CategoryInput) api.Envelope[catalog.Category] {
	return api.Post[catalog.Category](ctx, c.api, basePath+"/categories", in)
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) api.Envelope[struct{}] {
	return api.Delete[struct{}](ctx, c.api, basePath+"/categories/"+id)
}

// Banners lists all banners.
func (c *Client) Banners(ctx context.Context) api.Envelope[[]catalog.Banner] {
	return api.Get[[]catalog.Banner](ctx, c.api, basePath+"/banners")
}

// AddBanner creates a banner.
func (c *Client) AddBanner(ctx context.Context, in BannerInput) api.Envelope[catalog.Banner] {
	return api.Post[catalog.Banner](ctx, c.api, basePath+"/banners", in)
}

// DeleteBanner removes a banner.
func (c *Client) DeleteBanner(ctx context.Context, id string) api.Envelope[struct{}] {
	return api.Delete[struct{}](ctx, c.api, basePath+"/banners/"+id)
}

// Events lists promotional events.
func (c *Client) Events(ctx context.Context) api.Envelope[[]Event] {
	return api.Get[[]Event](ctx, c.api, basePath+"/events")
}

// AddEvent schedules an event.
func (c *Client) AddEvent(ctx context.Context, in EventInput) api.Envelope[Event] {
	return api.Post[Event](ctx, c.api, basePath+"/events", in)
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id string) api.Envelope[struct{}] {
	return api.Delete[struct{}](ctx, c.api, basePath+"/events/"+id)
}

// Stats fetches the dashboard headline counters.
func (c *Client) Stats(ctx context.Context) api.Envelope[Stats] {
	return api.Get[Stats](ctx, c.api, basePath+"/stats")
}

// Analytics fetches the chart series for the trailing rangeDays days.
func (c *Client) Analytics(ctx context.Context, rangeDays int) api.Envelope[[]AnalyticsPoint] {
	return api.Get[[]AnalyticsPoint](ctx, c.api, fmt.Sprintf("%s/analytics?days=%d", basePath, rangeDays))
}
