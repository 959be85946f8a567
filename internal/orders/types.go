package orders

import "time"

// Order status strings as the server reports them. The client never computes
// transitions; it renders whatever the server returns and re-fetches after
// each action.
const (
	StatusPending           = "pending"
	StatusAccepted          = "accepted"
	StatusPickupInitiated   = "pickup_initiated"
	StatusPickedUp          = "picked_up"
	StatusDeliveryInitiated = "delivery_initiated"
	StatusDelivered         = "delivered"
)

// Item is a single line in an order.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// Order is the delivery partner's view of an order.
type Order struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	VendorName    string    `json:"vendorName"`
	PickupAddress string    `json:"pickupAddress"`
	DropAddress   string    `json:"dropAddress"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Items         []Item    `json:"items,omitempty"`
	Amount        int64     `json:"amount"`
	DeliveryFee   int64     `json:"deliveryFee"`
	Distance      float64   `json:"distanceKm,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ActionResult is the boolean-ish acknowledgement the lifecycle endpoints
// return. Callers re-fetch the order to observe the new status.
type ActionResult struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}
