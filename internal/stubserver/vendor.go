package stubserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zestro/zestro-go/internal/stubserver/notify"
	"github.com/zestro/zestro-go/internal/stubserver/store"
)

const vendorLoginScopePrefix = "vendor-login:"

func toVendorProfileJSON(v store.Vendor) fiber.Map {
	return fiber.Map{
		"id":        v.ID,
		"name":      v.Name,
		"phone":     v.Phone,
		"email":     v.Email,
		"address":   v.Address,
		"kycStatus": v.KYCStatus,
		"open":      v.Open,
		"joinedAt":  v.CreatedAt,
	}
}

// vendorLogin issues a login OTP. Vendors are onboarded by the admin, so an
// unknown phone is rejected instead of auto-created.
func (s *Server) vendorLogin(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return err
	}
	if _, err := s.content.FindVendorByPhone(phone); errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "no vendor account for this phone")
	} else if err != nil {
		return err
	}

	ctx := c.UserContext()
	code, err := s.codes.Issue(ctx, vendorLoginScopePrefix+phone)
	if err != nil {
		return err
	}
	_ = s.notifier.Send(ctx, notify.Message{
		Kind:        notify.KindOTP,
		Destination: phone,
		Body:        "Your Zestro vendor login code is " + code,
	})
	return okMsg(c, "OTP sent", fiber.Map{
		"phone":     phone,
		"expiresIn": int64(s.cfg.OTPTTL.Seconds()),
	})
}

func (s *Server) vendorVerifyOTP(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return err
	}

	valid, err := s.codes.Verify(c.UserContext(), vendorLoginScopePrefix+phone, strings.TrimSpace(req.OTP))
	if err != nil {
		return err
	}
	if !valid {
		return fiber.NewError(http.StatusBadRequest, "invalid or expired OTP")
	}

	v, err := s.content.FindVendorByPhone(phone)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "no vendor account for this phone")
	}
	if err != nil {
		return err
	}
	token, err := mintToken(v.ID, RoleVendor, s.secret, s.cfg.TokenTTL)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"token": token, "vendor": toVendorProfileJSON(v)})
}

func (s *Server) callerVendor(c *fiber.Ctx) (store.Vendor, error) {
	v, err := s.content.FindVendorByID(subject(c))
	if errors.Is(err, store.ErrNotFound) {
		return store.Vendor{}, fiber.NewError(http.StatusNotFound, "vendor not found")
	}
	return v, err
}

func (s *Server) vendorProfile(c *fiber.Ctx) error {
	v, err := s.callerVendor(c)
	if err != nil {
		return err
	}
	return ok(c, toVendorProfileJSON(v))
}

func (s *Server) vendorUpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Address string `json:"address"`
		Open    *bool  `json:"open"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	v, err := s.callerVendor(c)
	if err != nil {
		return err
	}
	if n := strings.TrimSpace(req.Name); n != "" {
		v.Name = n
	}
	if e := strings.TrimSpace(req.Email); e != "" {
		v.Email = e
	}
	if a := strings.TrimSpace(req.Address); a != "" {
		v.Address = a
	}
	if req.Open != nil {
		v.Open = *req.Open
	}
	v, err = s.content.UpdateVendor(v)
	if err != nil {
		return err
	}
	return okMsg(c, "profile updated", toVendorProfileJSON(v))
}

func (s *Server) vendorProducts(c *fiber.Ctx) error {
	page, limit := paging(c)
	list, total := s.content.Products(subject(c), page, limit)
	return ok(c, toProductPage(list, total, page, limit))
}

type productInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	Price       int64  `json:"price"`
	InStock     bool   `json:"inStock"`
	ImageURL    string `json:"imageUrl"`
}

func (in productInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fiber.NewError(http.StatusBadRequest, "name is required")
	}
	if in.Price <= 0 {
		return fiber.NewError(http.StatusBadRequest, "price must be positive")
	}
	return nil
}

func (s *Server) vendorAddProduct(c *fiber.Ctx) error {
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if err := in.validate(); err != nil {
		return err
	}
	p := s.content.UpsertProduct(store.Product{
		VendorID:    subject(c),
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		InStock:     in.InStock,
		ImageURL:    in.ImageURL,
	})
	return created(c, toProductJSON(p))
}

func (s *Server) vendorUpdateProduct(c *fiber.Ctx) error {
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if err := in.validate(); err != nil {
		return err
	}
	p, err := s.content.FindProduct(c.Params("id"))
	if errors.Is(err, store.ErrNotFound) || (err == nil && p.VendorID != subject(c)) {
		return fiber.NewError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.Price = in.Price
	p.InStock = in.InStock
	p.ImageURL = in.ImageURL
	p = s.content.UpsertProduct(p)
	return okMsg(c, "product updated", toProductJSON(p))
}

func (s *Server) vendorDeleteProduct(c *fiber.Ctx) error {
	p, err := s.content.FindProduct(c.Params("id"))
	if errors.Is(err, store.ErrNotFound) || (err == nil && p.VendorID != subject(c)) {
		return fiber.NewError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return err
	}
	if err := s.content.DeleteProduct(p.ID); err != nil {
		return err
	}
	return okMsg(c, "product removed", struct{}{})
}

func toIncomingOrderJSON(o store.Order) fiber.Map {
	// Vendors see the kitchen-side status once they have set one; until
	// then the delivery status stands in.
	status := o.PrepStatus
	if status == "" {
		status = o.Status
	}
	items := 0
	for _, it := range o.Items {
		items += it.Quantity
	}
	return fiber.Map{
		"id":        o.ID,
		"status":    status,
		"items":     items,
		"amount":    o.Amount,
		"createdAt": o.CreatedAt,
	}
}

func (s *Server) vendorOrders(c *fiber.Ctx) error {
	page, limit := paging(c)
	list, total, err := s.orders.ListByVendor(c.UserContext(), subject(c), page, limit)
	if err != nil {
		return err
	}
	out := make([]fiber.Map, 0, len(list))
	for _, o := range list {
		out = append(out, toIncomingOrderJSON(o))
	}
	return ok(c, pageOf(out, total, page, limit))
}

var allowedPrepStatuses = map[string]bool{"preparing": true, "ready": true}

func (s *Server) vendorUpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !allowedPrepStatuses[status] {
		return fiber.NewError(http.StatusBadRequest, "status must be preparing or ready")
	}

	ctx := c.UserContext()
	o, err := s.orders.Get(ctx, c.Params("id"))
	if errors.Is(err, store.ErrNotFound) || (err == nil && o.VendorID != subject(c)) {
		return fiber.NewError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return err
	}
	if o.Status == store.OrderDelivered {
		return fiber.NewError(http.StatusConflict, "order already delivered")
	}
	o.PrepStatus = status
	o.UpdatedAt = time.Now().UTC()
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	return okMsg(c, "order status updated", toIncomingOrderJSON(o))
}
