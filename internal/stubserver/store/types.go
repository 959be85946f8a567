package store

import (
	"errors"
	"time"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

// Order status strings, owned by the server. Clients render these verbatim.
const (
	OrderPending           = "pending"
	OrderAccepted          = "accepted"
	OrderPickupInitiated   = "pickup_initiated"
	OrderPickedUp          = "picked_up"
	OrderDeliveryInitiated = "delivery_initiated"
	OrderDelivered         = "delivered"
)

// KYC statuses for partners and vendors.
const (
	KYCPending  = "pending"
	KYCApproved = "approved"
	KYCRejected = "rejected"
)

// Partner is a registered delivery partner.
type Partner struct {
	ID            string
	Phone         string
	Name          string
	Email         string
	VehicleType   string
	VehicleNumber string
	KYCStatus     string
	IsOnline      bool
	Rating        float64
	CreatedAt     time.Time
}

// Admin is a dashboard operator account.
type Admin struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash []byte
}

// Vendor is a restaurant/shop account.
type Vendor struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	KYCStatus string
	Open      bool
	CreatedAt time.Time
}

// Customer is a moderated end-user account.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Blocked   bool
	CreatedAt time.Time
}

// OrderItem is one line in an order.
type OrderItem struct {
	Name     string
	Quantity int
	Price    int64
}

// Order is a delivery job moving through the lifecycle.
type Order struct {
	ID            string
	PartnerID     string
	VendorID      string
	VendorName    string
	CustomerName  string
	CustomerPhone string
	PickupAddress string
	DropAddress   string
	Items         []OrderItem
	Amount        int64
	DeliveryFee   int64
	DistanceKm    float64
	Status        string
	// PrepStatus is the vendor's kitchen-side status (preparing/ready),
	// independent of the delivery lifecycle.
	PrepStatus string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Withdrawal is a partner payout request.
type Withdrawal struct {
	ID        string
	PartnerID string
	Amount    int64
	Status    string
	Reference string
	CreatedAt time.Time
}

// Product is a storefront listing owned by a vendor.
type Product struct {
	ID          string
	VendorID    string
	CategoryID  string
	Name        string
	Description string
	Price       int64
	InStock     bool
	Rating      float64
	ImageURL    string
}

// Category groups products.
type Category struct {
	ID       string
	Name     string
	ImageURL string
	Active   bool
}

// Banner is a promotional tile.
type Banner struct {
	ID       string
	Title    string
	ImageURL string
	LinkURL  string
	Active   bool
}

// Event is a scheduled promotion.
type Event struct {
	ID       string
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	Active   bool
}

// Review is customer feedback on a product.
type Review struct {
	ID        string
	ProductID string
	Author    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Coupon is a discount code validated at checkout.
type Coupon struct {
	Code     string
	Discount int64
	MinOrder int64
	Active   bool
}

// DailyStat is one bucket in the admin analytics series.
type DailyStat struct {
	Date    string
	Orders  int
	Revenue int64
}
