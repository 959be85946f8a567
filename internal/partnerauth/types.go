package partnerauth

import "time"

// KYC adjudication happens admin-side; the client only renders the status.
const (
	KYCPending  = "pending"
	KYCApproved = "approved"
	KYCRejected = "rejected"
)

// Partner is the last-fetched snapshot of the delivery partner record. The
// server is authoritative; this copy is refreshed by every endpoint that
// returns a fresh profile.
type Partner struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	VehicleType   string    `json:"vehicleType,omitempty"`
	VehicleNumber string    `json:"vehicleNumber,omitempty"`
	KYCStatus     string    `json:"kycStatus"`
	IsOnline      bool      `json:"isOnline"`
	Rating        float64   `json:"rating,omitempty"`
	JoinedAt      time.Time `json:"joinedAt,omitempty"`
}

// OTPPending is returned by login/resend when an OTP has been dispatched.
type OTPPending struct {
	Phone     string `json:"phone"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Verified is the OTP exchange result: a bearer token plus the profile.
type Verified struct {
	Token   string  `json:"token"`
	Partner Partner `json:"partner"`
}

// OnlineStatus carries the availability flag after a toggle.
type OnlineStatus struct {
	IsOnline bool `json:"isOnline"`
}

// ProfileUpdate holds the mutable profile fields. Empty fields are omitted
// from the request so the server only touches what was provided.
type ProfileUpdate struct {
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	VehicleType   string `json:"vehicleType,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
}

// LoggedOut acknowledges a server-side session invalidation.
type LoggedOut struct {
	Status string `json:"status"`
}
