package admin

import "time"

// Account is the admin's own record.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult is the password exchange result.
type LoginResult struct {
	Token string  `json:"token"`
	Admin Account `json:"admin"`
}

// User is a moderated customer account.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Blocked  bool      `json:"blocked"`
	JoinedAt time.Time `json:"joinedAt,omitempty"`
}

// Partner is a delivery partner account pending or past KYC adjudication.
type Partner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	KYCStatus string    `json:"kycStatus"`
	IsOnline  bool      `json:"isOnline"`
	Rating    float64   `json:"rating,omitempty"`
	JoinedAt  time.Time `json:"joinedAt,omitempty"`
}

// Vendor is a vendor account pending or past KYC adjudication.
type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	KYCStatus string    `json:"kycStatus"`
	Open      bool      `json:"open"`
	JoinedAt  time.Time `json:"joinedAt,omitempty"`
}

// CategoryInput is the payload for category CRUD.
type CategoryInput struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Active   bool   `json:"active"`
}

// BannerInput is the payload for banner CRUD.
type BannerInput struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Active   bool   `json:"active"`
}

// Event is a scheduled promotional event.
type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Active   bool      `json:"active"`
}

// EventInput is the payload for event CRUD.
type EventInput struct {
	Title    string    `json:"title"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Active   bool      `json:"active"`
}

// Stats is the dashboard headline counters.
type Stats struct {
	Users      int   `json:"users"`
	Vendors    int   `json:"vendors"`
	Partners   int   `json:"partners"`
	Orders     int   `json:"orders"`
	Revenue    int64 `json:"revenue"`
	PendingKYC int   `json:"pendingKyc"`
}

// AnalyticsPoint is one bucket in a dashboard chart series.
type AnalyticsPoint struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}
