package stubserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zestro/zestro-go/internal/stubserver/ledger"
	"github.com/zestro/zestro-go/internal/stubserver/notify"
	"github.com/zestro/zestro-go/internal/stubserver/store"
)

// OTP scopes for the handoff confirmations. Pickup codes go to the vendor,
// delivery codes to the customer.
const (
	pickupScopePrefix   = "pickup:"
	deliveryScopePrefix = "delivery:"
)

type orderItemJSON struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type orderJSON struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	VendorName    string          `json:"vendorName"`
	PickupAddress string          `json:"pickupAddress"`
	DropAddress   string          `json:"dropAddress"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Items         []orderItemJSON `json:"items,omitempty"`
	Amount        int64           `json:"amount"`
	DeliveryFee   int64           `json:"deliveryFee"`
	DistanceKm    float64         `json:"distanceKm,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func toOrderJSON(o store.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemJSON{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return orderJSON{
		ID:            o.ID,
		Status:        o.Status,
		VendorName:    o.VendorName,
		PickupAddress: o.PickupAddress,
		DropAddress:   o.DropAddress,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Items:         items,
		Amount:        o.Amount,
		DeliveryFee:   o.DeliveryFee,
		DistanceKm:    o.DistanceKm,
		CreatedAt:     o.CreatedAt,
	}
}

func toOrderPage(list []store.Order, total, page, limit int) fiber.Map {
	out := make([]orderJSON, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderJSON(o))
	}
	return pageOf(out, total, page, limit)
}

func (s *Server) listAvailableOrders(c *fiber.Ctx) error {
	page, limit := paging(c)
	list, total, err := s.orders.ListAvailable(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return ok(c, toOrderPage(list, total, page, limit))
}

func (s *Server) listActiveOrders(c *fiber.Ctx) error {
	page, limit := paging(c)
	list, total, err := s.orders.ListActive(c.UserContext(), subject(c), page, limit)
	if err != nil {
		return err
	}
	return ok(c, toOrderPage(list, total, page, limit))
}

func (s *Server) listOrderHistory(c *fiber.Ctx) error {
	page, limit := paging(c)
	list, total, err := s.orders.ListDelivered(c.UserContext(), subject(c), page, limit)
	if err != nil {
		return err
	}
	return ok(c, toOrderPage(list, total, page, limit))
}

func (s *Server) getOrder(c *fiber.Ctx) error {
	o, err := s.orders.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return err
	}
	// Assigned orders are only visible to their partner.
	if o.Status != store.OrderPending && o.PartnerID != subject(c) {
		return fiber.NewError(http.StatusNotFound, "order not found")
	}
	return ok(c, toOrderJSON(o))
}

// acceptOrder claims a pending order for the caller. The claim is atomic in
// the store: when two partners race, exactly one wins and the other gets a
// conflict.
func (s *Server) acceptOrder(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p, err := s.partners.FindByID(ctx, subject(c))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "partner not found")
	}
	if err != nil {
		return err
	}
	if p.KYCStatus != store.KYCApproved {
		return fiber.NewError(http.StatusForbidden, "KYC approval required before accepting orders")
	}

	o, err := s.orders.Claim(ctx, c.Params("id"), p.ID)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return fiber.NewError(http.StatusConflict, "order is no longer available")
	}
	return okMsg(c, "order accepted", actionResult(o))
}

func actionResult(o store.Order) fiber.Map {
	return fiber.Map{"orderId": o.ID, "status": o.Status}
}

// ownedOrder fetches the order and checks it is assigned to the caller and
// in the expected lifecycle state.
func (s *Server) ownedOrder(c *fiber.Ctx, wantStatus string) (store.Order, error) {
	o, err := s.orders.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return store.Order{}, fiber.NewError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return store.Order{}, err
	}
	if o.PartnerID != subject(c) {
		return store.Order{}, fiber.NewError(http.StatusNotFound, "order not found")
	}
	if o.Status != wantStatus {
		return store.Order{}, fiber.NewError(http.StatusConflict, "order is not in a state that allows this action")
	}
	return o, nil
}

func (s *Server) initiatePickup(c *fiber.Ctx) error {
	ctx := c.UserContext()
	o, err := s.ownedOrder(c, store.OrderAccepted)
	if err != nil {
		return err
	}
	code, err := s.codes.Issue(ctx, pickupScopePrefix+o.ID)
	if err != nil {
		return err
	}
	_ = s.notifier.Send(ctx, notify.Message{
		Kind:        notify.KindOTP,
		Destination: o.VendorName,
		Body:        "Pickup code for order " + o.ID + ": " + code,
	})
	o.Status = store.OrderPickupInitiated
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	return okMsg(c, "pickup OTP sent to vendor", actionResult(o))
}

func (s *Server) verifyPickup(c *fiber.Ctx) error {
	return s.verifyHandoff(c, store.OrderPickupInitiated, store.OrderPickedUp, pickupScopePrefix)
}

func (s *Server) initiateDelivery(c *fiber.Ctx) error {
	ctx := c.UserContext()
	o, err := s.ownedOrder(c, store.OrderPickedUp)
	if err != nil {
		return err
	}
	code, err := s.codes.Issue(ctx, deliveryScopePrefix+o.ID)
	if err != nil {
		return err
	}
	_ = s.notifier.Send(ctx, notify.Message{
		Kind:        notify.KindOTP,
		Destination: o.CustomerPhone,
		Body:        "Delivery code for your order: " + code,
	})
	o.Status = store.OrderDeliveryInitiated
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	return okMsg(c, "delivery OTP sent to customer", actionResult(o))
}

func (s *Server) verifyDelivery(c *fiber.Ctx) error {
	return s.verifyHandoff(c, store.OrderDeliveryInitiated, store.OrderDelivered, deliveryScopePrefix)
}

// verifyHandoff checks the handoff OTP and advances the order. Completing a
// delivery also credits the partner's ledger account with the delivery fee.
func (s *Server) verifyHandoff(c *fiber.Ctx, fromStatus, toStatus, scopePrefix string) error {
	var req struct {
		OTP string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.UserContext()
	o, err := s.ownedOrder(c, fromStatus)
	if err != nil {
		return err
	}
	valid, err := s.codes.Verify(ctx, scopePrefix+o.ID, strings.TrimSpace(req.OTP))
	if err != nil {
		return err
	}
	if !valid {
		return fiber.NewError(http.StatusBadRequest, "invalid or expired OTP")
	}

	o.Status = toStatus
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}

	if toStatus == store.OrderDelivered {
		account := ledger.PartnerAccount(o.PartnerID)
		if err := s.books.EnsureAccount(ctx, account); err != nil {
			return err
		}
		if _, err := s.books.Transfer(ctx, ledger.PlatformFloatAccount, account, ledger.KindDeliveryFee, o.ID, o.DeliveryFee); err != nil {
			return err
		}
		_ = s.notifier.Send(ctx, notify.Message{
			Kind:        notify.KindOrderUpdate,
			Destination: o.CustomerPhone,
			Body:        "Your order " + o.ID + " has been delivered",
		})
	}
	return okMsg(c, "order "+toStatus, actionResult(o))
}
