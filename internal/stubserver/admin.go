package stubserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/zestro/zestro-go/internal/stubserver/store"
)

func toAdminJSON(a store.Admin) fiber.Map {
	return fiber.Map{"id": a.ID, "name": a.Name, "email": a.Email, "role": a.Role}
}

func (s *Server) adminLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password are required")
	}

	a, err := s.content.FindAdminByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		// Same message as a wrong password so the endpoint does not leak
		// which accounts exist.
		return fiber.NewError(http.StatusBadRequest, "invalid credentials")
	}
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(req.Password)) != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid credentials")
	}

	token, err := mintToken(a.ID, RoleAdmin, s.secret, s.cfg.TokenTTL)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"token": token, "admin": toAdminJSON(a)})
}

func (s *Server) adminMe(c *fiber.Ctx) error {
	a, err := s.content.FindAdminByID(subject(c))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "admin not found")
	}
	if err != nil {
		return err
	}
	return ok(c, toAdminJSON(a))
}

func toUserJSON(u store.Customer) fiber.Map {
	return fiber.Map{
		"id":       u.ID,
		"name":     u.Name,
		"phone":    u.Phone,
		"blocked":  u.Blocked,
		"joinedAt": u.CreatedAt,
	}
}

func (s *Server) adminUsers(c *fiber.Ctx) error {
	page, limit := paging(c)
	users, total := s.content.Customers(page, limit)
	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, toUserJSON(u))
	}
	return ok(c, pageOf(out, total, page, limit))
}

func (s *Server) adminSetUserBlocked(c *fiber.Ctx) error {
	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	u, err := s.content.SetCustomerBlocked(c.Params("id"), req.Blocked)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return err
	}
	return okMsg(c, "user updated", toUserJSON(u))
}

func toAdminVendorJSON(v store.Vendor) fiber.Map {
	return fiber.Map{
		"id":        v.ID,
		"name":      v.Name,
		"phone":     v.Phone,
		"kycStatus": v.KYCStatus,
		"open":      v.Open,
		"joinedAt":  v.CreatedAt,
	}
}

func (s *Server) adminVendors(c *fiber.Ctx) error {
	page, limit := paging(c)
	vendors, total := s.content.Vendors(page, limit)
	out := make([]fiber.Map, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, toAdminVendorJSON(v))
	}
	return ok(c, pageOf(out, total, page, limit))
}

func parseKYCStatus(raw string) (string, error) {
	status := strings.ToLower(strings.TrimSpace(raw))
	switch status {
	case store.KYCApproved, store.KYCRejected, store.KYCPending:
		return status, nil
	default:
		return "", fiber.NewError(http.StatusBadRequest, "status must be pending, approved, or rejected")
	}
}

func (s *Server) adminSetVendorKYC(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	status, err := parseKYCStatus(req.Status)
	if err != nil {
		return err
	}
	v, err := s.content.FindVendorByID(c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "vendor not found")
	}
	if err != nil {
		return err
	}
	v.KYCStatus = status
	v, err = s.content.UpdateVendor(v)
	if err != nil {
		return err
	}
	return okMsg(c, "vendor KYC updated", toAdminVendorJSON(v))
}

func toAdminPartnerJSON(p store.Partner) fiber.Map {
	return fiber.Map{
		"id":        p.ID,
		"name":      p.Name,
		"phone":     p.Phone,
		"kycStatus": p.KYCStatus,
		"isOnline":  p.IsOnline,
		"rating":    p.Rating,
		"joinedAt":  p.CreatedAt,
	}
}

func (s *Server) adminPartners(c *fiber.Ctx) error {
	page, limit := paging(c)
	list, total, err := s.partners.List(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	out := make([]fiber.Map, 0, len(list))
	for _, p := range list {
		out = append(out, toAdminPartnerJSON(p))
	}
	return ok(c, pageOf(out, total, page, limit))
}

func (s *Server) adminSetPartnerKYC(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	status, err := parseKYCStatus(req.Status)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	p, err := s.partners.FindByID(ctx, c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "partner not found")
	}
	if err != nil {
		return err
	}
	p.KYCStatus = status
	if err := s.partners.Update(ctx, p); err != nil {
		return err
	}
	return okMsg(c, "partner KYC updated", toAdminPartnerJSON(p))
}

func (s *Server) adminCategories(c *fiber.Ctx) error {
	cats := s.content.Categories(false)
	out := make([]fiber.Map, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryJSON(cat))
	}
	return ok(c, out)
}

func (s *Server) adminAddCategory(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
		Active   bool   `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fiber.NewError(http.StatusBadRequest, "name is required")
	}
	cat := s.content.AddCategory(store.Category{
		Name:     strings.TrimSpace(req.Name),
		ImageURL: req.ImageURL,
		Active:   req.Active,
	})
	return created(c, toCategoryJSON(cat))
}

func (s *Server) adminDeleteCategory(c *fiber.Ctx) error {
	if err := s.content.DeleteCategory(c.Params("id")); errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "category not found")
	} else if err != nil {
		return err
	}
	return okMsg(c, "category removed", struct{}{})
}

func (s *Server) adminBanners(c *fiber.Ctx) error {
	banners := s.content.Banners(false)
	out := make([]fiber.Map, 0, len(banners))
	for _, b := range banners {
		out = append(out, toBannerJSON(b))
	}
	return ok(c, out)
}

func (s *Server) adminAddBanner(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		ImageURL string `json:"imageUrl"`
		LinkURL  string `json:"linkUrl"`
		Active   bool   `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fiber.NewError(http.StatusBadRequest, "title is required")
	}
	b := s.content.AddBanner(store.Banner{
		Title:    strings.TrimSpace(req.Title),
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Active:   req.Active,
	})
	return created(c, toBannerJSON(b))
}

func (s *Server) adminDeleteBanner(c *fiber.Ctx) error {
	if err := s.content.DeleteBanner(c.Params("id")); errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "banner not found")
	} else if err != nil {
		return err
	}
	return okMsg(c, "banner removed", struct{}{})
}

func toEventJSON(e store.Event) fiber.Map {
	return fiber.Map{
		"id":       e.ID,
		"title":    e.Title,
		"startsAt": e.StartsAt,
		"endsAt":   e.EndsAt,
		"active":   e.Active,
	}
}

func (s *Server) adminEvents(c *fiber.Ctx) error {
	events := s.content.Events()
	out := make([]fiber.Map, 0, len(events))
	for _, e := range events {
		out = append(out, toEventJSON(e))
	}
	return ok(c, out)
}

func (s *Server) adminAddEvent(c *fiber.Ctx) error {
	var req struct {
		Title    string    `json:"title"`
		StartsAt time.Time `json:"startsAt"`
		EndsAt   time.Time `json:"endsAt"`
		Active   bool      `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return fiber.NewError(http.StatusBadRequest, "title is required")
	}
	if !req.EndsAt.After(req.StartsAt) {
		return fiber.NewError(http.StatusBadRequest, "endsAt must be after startsAt")
	}
	e := s.content.AddEvent(store.Event{
		Title:    strings.TrimSpace(req.Title),
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Active:   req.Active,
	})
	return created(c, toEventJSON(e))
}

func (s *Server) adminDeleteEvent(c *fiber.Ctx) error {
	if err := s.content.DeleteEvent(c.Params("id")); errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "event not found")
	} else if err != nil {
		return err
	}
	return okMsg(c, "event removed", struct{}{})
}

func (s *Server) adminStats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	partnerCount, err := s.partners.Count(ctx)
	if err != nil {
		return err
	}
	orderCount, revenue, err := s.orders.Totals(ctx)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{
		"users":      s.content.CustomerCount(),
		"vendors":    s.content.VendorCount(),
		"partners":   partnerCount,
		"orders":     orderCount,
		"revenue":    revenue,
		"pendingKyc": s.content.PendingKYCCount(),
	})
}

func (s *Server) adminAnalytics(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 {
		days = 1
	}
	if days > 90 {
		days = 90
	}
	series, err := s.orders.DailySeries(c.UserContext(), days)
	if err != nil {
		return err
	}
	out := make([]fiber.Map, 0, len(series))
	for _, p := range series {
		out = append(out, fiber.Map{"date": p.Date, "orders": p.Orders, "revenue": p.Revenue})
	}
	return ok(c, out)
}
