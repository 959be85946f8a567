// Package stubserver is a self-contained Fiber implementation of the
// platform API surface the client modules bind: partner auth and orders,
// wallet and earnings, the public storefront, vendor management, and the
// admin dashboard. It exists so the SDK and the command-line apps can be
// exercised end to end without the production backend.
package stubserver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/zestro/zestro-go/internal/config"
	"github.com/zestro/zestro-go/internal/stubserver/ledger"
	"github.com/zestro/zestro-go/internal/stubserver/notify"
	"github.com/zestro/zestro-go/internal/stubserver/otp"
	"github.com/zestro/zestro-go/internal/stubserver/store"
)

// Options wires the server's external dependencies. DB and Cache are
// optional: without them the server runs fully in memory, which is how the
// tests and the default dev setup use it.
type Options struct {
	Config   config.Server
	Logger   *slog.Logger
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Payouts  PayoutProcessor
	Notifier notify.Notifier
}

// Server hosts the stub API.
type Server struct {
	cfg    config.Server
	log    *slog.Logger
	app    *fiber.App
	secret []byte

	partners    store.Partners
	orders      store.Orders
	withdrawals store.Withdrawals
	content     *store.Content
	books       ledger.Ledger
	codes       *otp.Service
	payouts     PayoutProcessor
	notifier    notify.Notifier

	addrMu    sync.Mutex
	addresses map[string][]addressRecord
}

// New assembles the server: backends by configuration, seeded demo data, and
// the full route table.
func New(ctx context.Context, opts Options) (*Server, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	payouts := opts.Payouts
	if payouts == nil {
		payouts = StaticPayoutProcessor{}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLoggerNotifier(opts.Logger)
	}

	s := &Server{
		cfg:       opts.Config,
		log:       opts.Logger,
		secret:    []byte(opts.Config.JWTSecret),
		content:   store.NewContent(),
		codes:     otp.New(opts.Cache, opts.Config.OTPTTL, opts.Config.IsDev()),
		payouts:   payouts,
		notifier:  notifier,
		addresses: make(map[string][]addressRecord),
	}

	if opts.DB != nil {
		if err := store.Migrate(ctx, opts.DB); err != nil {
			return nil, fmt.Errorf("migrate store: %w", err)
		}
		pl := ledger.NewPostgresLedger(opts.DB)
		if err := pl.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate ledger: %w", err)
		}
		s.partners = store.NewPostgresPartners(opts.DB)
		s.orders = store.NewPostgresOrders(opts.DB)
		s.withdrawals = store.NewPostgresWithdrawals(opts.DB)
		s.books = pl
	} else {
		s.partners = store.NewMemoryPartners()
		s.orders = store.NewMemoryOrders()
		s.withdrawals = store.NewMemoryWithdrawals()
		s.books = ledger.NewInMemory()
	}

	for _, code := range []string{ledger.PlatformFloatAccount, ledger.PayoutPendingAccount} {
		if err := s.books.EnsureAccount(ctx, code); err != nil {
			return nil, fmt.Errorf("ensure account %s: %w", code, err)
		}
	}

	if opts.Config.IsDev() {
		if err := s.seedOrders(ctx); err != nil {
			return nil, fmt.Errorf("seed orders: %w", err)
		}
	}

	s.app = fiber.New(fiber.Config{
		AppName:               opts.Config.AppName,
		ErrorHandler:          envelopeErrorHandler,
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(requestID())
	s.app.Use(audit(opts.Logger))
	s.routes(opts.Cache)

	return s, nil
}

// App exposes the underlying Fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.log.Info("stub server listening", slog.String("addr", s.cfg.Address()), slog.String("env", s.cfg.AppEnv))
	return s.app.Listen(s.cfg.Address())
}

// Shutdown drains in-flight requests within the configured grace period.
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(s.cfg.ShutdownPeriod)
}

func (s *Server) routes(cache *redis.Client) {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return ok(c, fiber.Map{"status": "ok", "env": s.cfg.AppEnv})
	})

	// Public storefront.
	s.app.Get("/products", s.listProducts)
	s.app.Get("/products/:id", s.getProduct)
	s.app.Get("/categories", s.listCategories)
	s.app.Get("/banners", s.listBanners)
	s.app.Get("/reviews", s.listReviews)

	// Customer surface: any valid token. These sit at the root, so the
	// guard goes on each route rather than on a catch-all group.
	anyToken := requireRole(s.secret)
	s.app.Get("/orders", anyToken, s.listCustomerOrders)
	s.app.Get("/addresses", anyToken, s.listAddresses)
	s.app.Post("/addresses", anyToken, s.addAddress)
	s.app.Delete("/addresses/:id", anyToken, s.deleteAddress)
	s.app.Post("/coupons/validate", anyToken, s.validateCoupon)
	s.app.Get("/notifications", anyToken, s.listNotifications)

	// Delivery partner surface.
	pa := s.app.Group("/delivery-partner/auth")
	pa.Post("/login", loginRateLimit(cache, 5), s.partnerLogin)
	pa.Post("/resend-otp", loginRateLimit(cache, 5), s.partnerResendOTP)
	pa.Post("/verify-otp", s.partnerVerifyOTP)
	pa.Get("/me", requireRole(s.secret, RolePartner), s.partnerMe)
	pa.Put("/profile", requireRole(s.secret, RolePartner), s.partnerUpdateProfile)
	pa.Post("/toggle-online", requireRole(s.secret, RolePartner), s.partnerToggleOnline)
	pa.Post("/logout", requireRole(s.secret, RolePartner), s.partnerLogout)

	po := s.app.Group("/delivery-partner/orders", requireRole(s.secret, RolePartner))
	po.Get("/available", s.listAvailableOrders)
	po.Get("/active", s.listActiveOrders)
	po.Get("/history", s.listOrderHistory)
	po.Get("/:id", s.getOrder)
	po.Post("/:id/accept", s.acceptOrder)
	po.Post("/:id/initiate-pickup", s.initiatePickup)
	po.Post("/:id/verify-pickup", s.verifyPickup)
	po.Post("/:id/initiate-delivery", s.initiateDelivery)
	po.Post("/:id/verify-delivery", s.verifyDelivery)

	pe := s.app.Group("/delivery-partner/earnings", requireRole(s.secret, RolePartner))
	pe.Get("/", s.earningsSummary)
	pe.Get("/history", s.earningsHistory)

	pw := s.app.Group("/delivery-partner/wallet", requireRole(s.secret, RolePartner))
	pw.Get("/balance", s.walletBalance)
	pw.Get("/transactions", s.walletTransactions)
	pw.Post("/withdraw", s.walletWithdraw)
	pw.Get("/withdrawals", s.walletWithdrawals)

	// Vendor surface.
	va := s.app.Group("/vendor/auth")
	va.Post("/login", loginRateLimit(cache, 5), s.vendorLogin)
	va.Post("/verify-otp", s.vendorVerifyOTP)

	v := s.app.Group("/vendor", requireRole(s.secret, RoleVendor))
	v.Get("/profile", s.vendorProfile)
	v.Put("/profile", s.vendorUpdateProfile)
	v.Get("/products", s.vendorProducts)
	v.Post("/products", s.vendorAddProduct)
	v.Put("/products/:id", s.vendorUpdateProduct)
	v.Delete("/products/:id", s.vendorDeleteProduct)
	v.Get("/orders", s.vendorOrders)
	v.Put("/orders/:id/status", s.vendorUpdateOrderStatus)

	// Admin surface.
	s.app.Post("/admin/login", loginRateLimit(cache, 5), s.adminLogin)
	a := s.app.Group("/admin", requireRole(s.secret, RoleAdmin))
	a.Get("/me", s.adminMe)
	a.Get("/users", s.adminUsers)
	a.Put("/users/:id/blocked", s.adminSetUserBlocked)
	a.Get("/vendors", s.adminVendors)
	a.Put("/vendors/:id/kyc", s.adminSetVendorKYC)
	a.Get("/partners", s.adminPartners)
	a.Put("/partners/:id/kyc", s.adminSetPartnerKYC)
	a.Get("/categories", s.adminCategories)
	a.Post("/categories", s.adminAddCategory)
	a.Delete("/categories/:id", s.adminDeleteCategory)
	a.Get("/banners", s.adminBanners)
	a.Post("/banners", s.adminAddBanner)
	a.Delete("/banners/:id", s.adminDeleteBanner)
	a.Get("/events", s.adminEvents)
	a.Post("/events", s.adminAddEvent)
	a.Delete("/events/:id", s.adminDeleteEvent)
	a.Get("/stats", s.adminStats)
	a.Get("/analytics", s.adminAnalytics)
}

// seedOrders creates a handful of pending demo orders from the seeded
// vendors so a fresh dev server has work for a partner to accept.
func (s *Server) seedOrders(ctx context.Context) error {
	vendors, _ := s.content.Vendors(1, 10)
	if len(vendors) == 0 {
		return nil
	}
	now := time.Now().UTC()
	demo := []struct {
		customer string
		phone    string
		drop     string
		items    []store.OrderItem
		fee      int64
		distance float64
	}{
		{
			customer: "Asha", phone: "9822220001", drop: "12 Lakeview Rd",
			items:    []store.OrderItem{{Name: "Paneer Thali", Quantity: 1, Price: 22000}},
			fee:      4000, distance: 2.4,
		},
		{
			customer: "Ravi", phone: "9822220002", drop: "3 Hill St, Apt 9",
			items:    []store.OrderItem{{Name: "Samosa (2pc)", Quantity: 3, Price: 4000}},
			fee:      3000, distance: 1.1,
		},
		{
			customer: "Asha", phone: "9822220001", drop: "Office Park, Tower B",
			items: []store.OrderItem{
				{Name: "Paneer Thali", Quantity: 2, Price: 22000},
				{Name: "Samosa (2pc)", Quantity: 1, Price: 4000},
			},
			fee: 5000, distance: 4.7,
		},
	}
	for i, d := range demo {
		vendor := vendors[i%len(vendors)]
		var amount int64
		for _, it := range d.items {
			amount += it.Price * int64(it.Quantity)
		}
		o := store.Order{
			ID:            uuid.NewString(),
			VendorID:      vendor.ID,
			VendorName:    vendor.Name,
			CustomerName:  d.customer,
			CustomerPhone: d.phone,
			PickupAddress: vendor.Name + " kitchen",
			DropAddress:   d.drop,
			Items:         d.items,
			Amount:        amount,
			DeliveryFee:   d.fee,
			DistanceKm:    d.distance,
			Status:        store.OrderPending,
			CreatedAt:     now.Add(-time.Duration(i) * time.Minute),
		}
		if err := s.orders.Create(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
