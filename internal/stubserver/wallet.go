package stubserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/zestro/zestro-go/internal/stubserver/ledger"
	"github.com/zestro/zestro-go/internal/stubserver/store"
)

// ledgerScanLimit bounds how much history the earnings endpoints scan. A
// single large ledger page covers every demo scenario.
const ledgerScanLimit = 1000

func (s *Server) walletBalance(c *fiber.Ctx) error {
	balance, err := s.books.Balance(c.UserContext(), ledger.PartnerAccount(subject(c)))
	if errors.Is(err, ledger.ErrUnknownAccount) {
		balance = 0
	} else if err != nil {
		return err
	}
	return ok(c, fiber.Map{"amount": balance, "asOf": time.Now().UTC()})
}

func (s *Server) walletTransactions(c *fiber.Ctx) error {
	page, limit := paging(c)
	account := ledger.PartnerAccount(subject(c))
	txs, total, err := s.books.History(c.UserContext(), account, page, limit)
	if errors.Is(err, ledger.ErrUnknownAccount) {
		return ok(c, pageOf([]fiber.Map{}, 0, page, limit))
	}
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(txs))
	for _, tx := range txs {
		amount := tx.Amount
		if tx.From == account {
			amount = -amount
		}
		out = append(out, fiber.Map{
			"id":        tx.ID,
			"kind":      tx.Kind,
			"amount":    amount,
			"reference": tx.Reference,
			"createdAt": tx.CreatedAt,
		})
	}
	return ok(c, pageOf(out, total, page, limit))
}

// walletWithdraw authorizes a payout and moves the amount from the partner
// account into the payout pending account in one posting.
func (s *Server) walletWithdraw(c *fiber.Ctx) error {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	if req.Amount <= 0 {
		return fiber.NewError(http.StatusBadRequest, "amount must be positive")
	}

	ctx := c.UserContext()
	partnerID := subject(c)
	account := ledger.PartnerAccount(partnerID)
	if err := s.books.EnsureAccount(ctx, account); err != nil {
		return err
	}

	decision, err := s.payouts.Authorize(ctx, PayoutRequest{PartnerID: partnerID, Amount: req.Amount})
	if err != nil {
		return fiber.NewError(http.StatusBadGateway, "payout processor unavailable")
	}

	withdrawalID := uuid.NewString()
	if _, err := s.books.Transfer(ctx, account, ledger.PayoutPendingAccount, ledger.KindWithdrawal, withdrawalID, req.Amount); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return fiber.NewError(http.StatusBadRequest, "insufficient balance")
		}
		return err
	}

	w := store.Withdrawal{
		ID:        withdrawalID,
		PartnerID: partnerID,
		Amount:    req.Amount,
		Status:    decision.Status,
		Reference: decision.Reference,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.withdrawals.Create(ctx, w); err != nil {
		return err
	}
	return created(c, withdrawalJSON(w))
}

func (s *Server) walletWithdrawals(c *fiber.Ctx) error {
	page, limit := paging(c)
	list, total, err := s.withdrawals.ListByPartner(c.UserContext(), subject(c), page, limit)
	if err != nil {
		return err
	}
	out := make([]fiber.Map, 0, len(list))
	for _, w := range list {
		out = append(out, withdrawalJSON(w))
	}
	return ok(c, pageOf(out, total, page, limit))
}

func withdrawalJSON(w store.Withdrawal) fiber.Map {
	return fiber.Map{
		"id":        w.ID,
		"amount":    w.Amount,
		"status":    w.Status,
		"reference": w.Reference,
		"createdAt": w.CreatedAt,
	}
}

// partnerCredits returns the delivery fee credits for a partner, newest
// first, by scanning the account's ledger history.
func (s *Server) partnerCredits(c *fiber.Ctx) ([]ledger.Transaction, error) {
	account := ledger.PartnerAccount(subject(c))
	txs, _, err := s.books.History(c.UserContext(), account, 1, ledgerScanLimit)
	if errors.Is(err, ledger.ErrUnknownAccount) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var credits []ledger.Transaction
	for _, tx := range txs {
		if tx.To == account && tx.Kind == ledger.KindDeliveryFee {
			credits = append(credits, tx)
		}
	}
	return credits, nil
}

func (s *Server) earningsSummary(c *fiber.Ctx) error {
	credits, err := s.partnerCredits(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, -1, 0)

	var today, week, month, lifetime int64
	for _, tx := range credits {
		lifetime += tx.Amount
		if !tx.CreatedAt.Before(monthStart) {
			month += tx.Amount
		}
		if !tx.CreatedAt.Before(weekStart) {
			week += tx.Amount
		}
		if !tx.CreatedAt.Before(dayStart) {
			today += tx.Amount
		}
	}
	return ok(c, fiber.Map{
		"today":      today,
		"thisWeek":   week,
		"thisMonth":  month,
		"lifetime":   lifetime,
		"deliveries": len(credits),
	})
}

func (s *Server) earningsHistory(c *fiber.Ctx) error {
	credits, err := s.partnerCredits(c)
	if err != nil {
		return err
	}
	page, limit := paging(c)
	total := len(credits)
	start, end := store.Paginate(total, page, limit)

	out := make([]fiber.Map, 0, end-start)
	for _, tx := range credits[start:end] {
		out = append(out, fiber.Map{
			"orderId":   tx.Reference,
			"amount":    tx.Amount,
			"createdAt": tx.CreatedAt,
		})
	}
	return ok(c, pageOf(out, total, page, limit))
}
