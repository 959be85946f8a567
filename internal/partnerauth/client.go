// Package partnerauth binds the delivery partner auth endpoints. Endpoints
// that return a fresh profile persist it into the credential session so
// local reads reflect the latest server truth without another round trip.
package partnerauth

import (
	"context"

	"github.com/zestro/zestro-go/internal/api"
	"github.com/zestro/zestro-go/internal/credentials"
)

const basePath = "/delivery-partner/auth"

// Client is the typed binding for partner auth operations.
type Client struct {
	api  *api.Client
	sess *credentials.Session
}

// NewClient builds the auth module over the shared request wrapper.
func NewClient(a *api.Client) *Client {
	return &Client{api: a, sess: a.Session()}
}

// Login requests an OTP for the given phone number.
func (c *Client) Login(ctx context.Context, phone string) api.Envelope[OTPPending] {
	return api.Post[OTPPending](ctx, c.api, basePath+"/login", map[string]string{"phone": phone})
}

// ResendOTP requests a fresh OTP for a pending login.
func (c *Client) ResendOTP(ctx context.Context, phone string) api.Envelope[OTPPending] {
	return api.Post[OTPPending](ctx, c.api, basePath+"/resend-otp", map[string]string{"phone": phone})
}

// VerifyOTP exchanges an OTP for a session. On success the token and profile
// snapshot are persisted together.
func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) api.Envelope[Verified] {
	env := api.Post[Verified](ctx, c.api, basePath+"/verify-otp", map[string]string{"phone": phone, "otp": otp})
	if env.Success && env.Response != nil {
		c.sess.SetToken(env.Response.Token)
		c.sess.SetProfile(env.Response.Partner)
	}
	return env
}

// Me refreshes and persists the profile snapshot.
func (c *Client) Me(ctx context.Context) api.Envelope[Partner] {
	env := api.Get[Partner](ctx, c.api, basePath+"/me")
	if env.Success && env.Response != nil {
		c.sess.SetProfile(*env.Response)
	}
	return env
}

// UpdateProfile mutates profile fields server-side and persists the returned
// snapshot.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) api.Envelope[Partner] {
	env := api.Put[Partner](ctx, c.api, basePath+"/profile", update)
	if env.Success && env.Response != nil {
		c.sess.SetProfile(*env.Response)
	}
	return env
}

// ToggleOnline flips the availability flag and merges the new value into the
// stored snapshot.
func (c *Client) ToggleOnline(ctx context.Context) api.Envelope[OnlineStatus] {
	env := api.Post[OnlineStatus](ctx, c.api, basePath+"/toggle-online", nil)
	if env.Success && env.Response != nil {
		var p Partner
		if c.sess.Profile(&p) {
			p.IsOnline = env.Response.IsOnline
			c.sess.SetProfile(p)
		}
	}
	return env
}

// Logout invalidates the server session and clears local credentials. The
// local clear happens even when the server call fails: once the user asked
// to log out, keeping a token around is worse than an orphaned server
// session.
func (c *Client) Logout(ctx context.Context) api.Envelope[LoggedOut] {
	env := api.Post[LoggedOut](ctx, c.api, basePath+"/logout", nil)
	c.sess.ClearAll()
	return env
}

// CachedProfile reads the locally stored snapshot without a network call.
func (c *Client) CachedProfile() (Partner, bool) {
	var p Partner
	ok := c.sess.Profile(&p)
	return p, ok
}
