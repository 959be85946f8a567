package stubserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/zestro/zestro-go/internal/stubserver/ledger"
	"github.com/zestro/zestro-go/internal/stubserver/notify"
	"github.com/zestro/zestro-go/internal/stubserver/store"
)

type partnerJSON struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	VehicleType   string    `json:"vehicleType,omitempty"`
	VehicleNumber string    `json:"vehicleNumber,omitempty"`
	KYCStatus     string    `json:"kycStatus"`
	IsOnline      bool      `json:"isOnline"`
	Rating        float64   `json:"rating,omitempty"`
	JoinedAt      time.Time `json:"joinedAt"`
}

func toPartnerJSON(p store.Partner) partnerJSON {
	return partnerJSON{
		ID:            p.ID,
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		VehicleType:   p.VehicleType,
		VehicleNumber: p.VehicleNumber,
		KYCStatus:     p.KYCStatus,
		IsOnline:      p.IsOnline,
		Rating:        p.Rating,
		JoinedAt:      p.CreatedAt,
	}
}

const loginScopePrefix = "login:"

func normalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if len(phone) < 8 {
		return "", fiber.NewError(http.StatusBadRequest, "a valid phone number is required")
	}
	for _, r := range phone {
		if (r < '0' || r > '9') && r != '+' {
			return "", fiber.NewError(http.StatusBadRequest, "a valid phone number is required")
		}
	}
	return phone, nil
}

// partnerLogin issues a login OTP. Unknown phone numbers are onboarded on
// the spot with a pending KYC record; in development the record is approved
// immediately so the delivery flow works out of the box.
func (s *Server) partnerLogin(c *fiber.Ctx) error {
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

	ctx := c.UserContext()
	if _, err := s.partners.FindByPhone(ctx, phone); errors.Is(err, store.ErrNotFound) {
		kyc := store.KYCPending
		if s.cfg.IsDev() {
			kyc = store.KYCApproved
		}
		p := store.Partner{
			ID:        uuid.NewString(),
			Phone:     phone,
			Name:      "Partner " + phone[len(phone)-4:],
			KYCStatus: kyc,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.partners.Create(ctx, p); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return s.dispatchLoginOTP(c, phone)
}

// partnerResendOTP reissues the login OTP for an already known phone.
func (s *Server) partnerResendOTP(c *fiber.Ctx) error {
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
	if _, err := s.partners.FindByPhone(c.UserContext(), phone); errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "no login pending for this phone")
	} else if err != nil {
		return err
	}
	return s.dispatchLoginOTP(c, phone)
}

func (s *Server) dispatchLoginOTP(c *fiber.Ctx, phone string) error {
	ctx := c.UserContext()
	code, err := s.codes.Issue(ctx, loginScopePrefix+phone)
	if err != nil {
		return err
	}
	_ = s.notifier.Send(ctx, notify.Message{
		Kind:        notify.KindOTP,
		Destination: phone,
		Body:        "Your Zestro login code is " + code,
	})
	return okMsg(c, "OTP sent", fiber.Map{
		"phone":     phone,
		"expiresIn": int64(s.cfg.OTPTTL.Seconds()),
	})
}

// partnerVerifyOTP exchanges a login OTP for a bearer token. A wrong code is
// a 400, not a 401: there is no session to expire yet.
func (s *Server) partnerVerifyOTP(c *fiber.Ctx) error {
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

	ctx := c.UserContext()
	valid, err := s.codes.Verify(ctx, loginScopePrefix+phone, strings.TrimSpace(req.OTP))
	if err != nil {
		return err
	}
	if !valid {
		return fiber.NewError(http.StatusBadRequest, "invalid or expired OTP")
	}

	p, err := s.partners.FindByPhone(ctx, phone)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "no login pending for this phone")
	}
	if err != nil {
		return err
	}

	if err := s.books.EnsureAccount(ctx, ledger.PartnerAccount(p.ID)); err != nil {
		return err
	}

	token, err := mintToken(p.ID, RolePartner, s.secret, s.cfg.TokenTTL)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"token": token, "partner": toPartnerJSON(p)})
}

func (s *Server) partnerMe(c *fiber.Ctx) error {
	p, err := s.partners.FindByID(c.UserContext(), subject(c))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "partner not found")
	}
	if err != nil {
		return err
	}
	return ok(c, toPartnerJSON(p))
}

// partnerUpdateProfile applies the provided fields only; empty fields leave
// the stored value untouched.
func (s *Server) partnerUpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		VehicleType   string `json:"vehicleType"`
		VehicleNumber string `json:"vehicleNumber"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.UserContext()
	p, err := s.partners.FindByID(ctx, subject(c))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "partner not found")
	}
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		p.Email = v
	}
	if v := strings.TrimSpace(req.VehicleType); v != "" {
		p.VehicleType = v
	}
	if v := strings.TrimSpace(req.VehicleNumber); v != "" {
		p.VehicleNumber = v
	}
	if err := s.partners.Update(ctx, p); err != nil {
		return err
	}
	return okMsg(c, "profile updated", toPartnerJSON(p))
}

func (s *Server) partnerToggleOnline(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p, err := s.partners.FindByID(ctx, subject(c))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "partner not found")
	}
	if err != nil {
		return err
	}
	p.IsOnline = !p.IsOnline
	if err := s.partners.Update(ctx, p); err != nil {
		return err
	}
	return ok(c, fiber.Map{"isOnline": p.IsOnline})
}

// partnerLogout acknowledges the logout. Tokens are stateless here, so there
// is nothing to revoke server-side.
func (s *Server) partnerLogout(c *fiber.Ctx) error {
	return okMsg(c, "logged out", fiber.Map{"status": "ok"})
}
