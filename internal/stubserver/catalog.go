package stubserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/zestro/zestro-go/internal/stubserver/store"
)

type productJSON struct {
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

func toProductJSON(p store.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		VendorID:    p.VendorID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		InStock:     p.InStock,
		Rating:      p.Rating,
		ImageURL:    p.ImageURL,
	}
}

func toProductPage(list []store.Product, total, page, limit int) fiber.Map {
	out := make([]productJSON, 0, len(list))
	for _, p := range list {
		out = append(out, toProductJSON(p))
	}
	return pageOf(out, total, page, limit)
}

func toCategoryJSON(cat store.Category) fiber.Map {
	return fiber.Map{"id": cat.ID, "name": cat.Name, "imageUrl": cat.ImageURL, "active": cat.Active}
}

func toBannerJSON(b store.Banner) fiber.Map {
	return fiber.Map{"id": b.ID, "title": b.Title, "imageUrl": b.ImageURL, "linkUrl": b.LinkURL, "active": b.Active}
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	page, limit := paging(c)
	list, total := s.content.Products("", page, limit)
	return ok(c, toProductPage(list, total, page, limit))
}

func (s *Server) getProduct(c *fiber.Ctx) error {
	p, err := s.content.FindProduct(c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return err
	}
	return ok(c, toProductJSON(p))
}

func (s *Server) listCategories(c *fiber.Ctx) error {
	cats := s.content.Categories(true)
	out := make([]fiber.Map, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryJSON(cat))
	}
	return ok(c, out)
}

func (s *Server) listBanners(c *fiber.Ctx) error {
	banners := s.content.Banners(true)
	out := make([]fiber.Map, 0, len(banners))
	for _, b := range banners {
		out = append(out, toBannerJSON(b))
	}
	return ok(c, out)
}

func (s *Server) listReviews(c *fiber.Ctx) error {
	productID := c.Query("productId")
	if productID == "" {
		return fiber.NewError(http.StatusBadRequest, "productId is required")
	}
	page, limit := paging(c)
	reviews, total := s.content.Reviews(productID, page, limit)
	out := make([]fiber.Map, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, fiber.Map{
			"id":        r.ID,
			"productId": r.ProductID,
			"author":    r.Author,
			"rating":    r.Rating,
			"comment":   r.Comment,
			"createdAt": r.CreatedAt,
		})
	}
	return ok(c, pageOf(out, total, page, limit))
}

// Customer surface. The stub does not model checkout, so the order list is
// honestly empty rather than fabricated.
func (s *Server) listCustomerOrders(c *fiber.Ctx) error {
	page, limit := paging(c)
	return ok(c, pageOf([]fiber.Map{}, 0, page, limit))
}

type addressRecord struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Default bool   `json:"default,omitempty"`
}

func (s *Server) listAddresses(c *fiber.Ctx) error {
	s.addrMu.Lock()
	list := append([]addressRecord(nil), s.addresses[subject(c)]...)
	s.addrMu.Unlock()
	if list == nil {
		list = []addressRecord{}
	}
	return ok(c, list)
}

func (s *Server) addAddress(c *fiber.Ctx) error {
	var a addressRecord
	if err := c.BodyParser(&a); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == "" {
		return fiber.NewError(http.StatusBadRequest, "line1 and city are required")
	}
	a.ID = uuid.NewString()

	s.addrMu.Lock()
	s.addresses[subject(c)] = append(s.addresses[subject(c)], a)
	s.addrMu.Unlock()
	return created(c, a)
}

func (s *Server) deleteAddress(c *fiber.Ctx) error {
	id := c.Params("id")
	owner := subject(c)

	s.addrMu.Lock()
	defer s.addrMu.Unlock()
	list := s.addresses[owner]
	for i, a := range list {
		if a.ID == id {
			s.addresses[owner] = append(list[:i], list[i+1:]...)
			return okMsg(c, "address removed", struct{}{})
		}
	}
	return fiber.NewError(http.StatusNotFound, "address not found")
}

func (s *Server) validateCoupon(c *fiber.Ctx) error {
	var req struct {
		Code   string `json:"code"`
		Amount int64  `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return fiber.NewError(http.StatusBadRequest, "code is required")
	}
	discount, valid := s.content.ValidateCoupon(code, req.Amount)
	return ok(c, fiber.Map{"code": code, "valid": valid, "discount": discount})
}

func (s *Server) listNotifications(c *fiber.Ctx) error {
	page, limit := paging(c)
	all := []fiber.Map{{
		"id":        "welcome",
		"title":     "Welcome to Zestro",
		"body":      "Browse the storefront and place your first order.",
		"read":      false,
		"createdAt": time.Now().UTC(),
	}}
	total := len(all)
	start, end := store.Paginate(total, page, limit)
	return ok(c, pageOf(all[start:end], total, page, limit))
}
