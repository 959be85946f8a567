// Package ledger backs partner wallet balances and earnings with a small
// double-entry ledger: every delivery credit and withdrawal debit is a
// balanced transfer between two accounts.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrInsufficientFunds occurs when the source account lacks available
	// balance to cover a requested posting.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownAccount indicates a posting referenced an account that was
	// never created.
	ErrUnknownAccount = errors.New("unknown account")
)

// Well-known account codes. Platform accounts may overdraw: they represent
// the company float, not a customer balance.
const (
	PlatformFloatAccount  = "platform:float"
	PayoutPendingAccount  = "platform:payouts"
	partnerAccountPrefix  = "partner:"
	platformAccountPrefix = "platform:"
)

// Transaction kinds.
const (
	KindDeliveryFee = "delivery_fee"
	KindWithdrawal  = "withdrawal"
)

// PartnerAccount returns the ledger account code for a partner.
func PartnerAccount(partnerID string) string {
	return partnerAccountPrefix + partnerID
}

// Transaction records one balanced posting.
type Transaction struct {
	ID        string
	Kind      string
	Reference string
	From      string
	To        string
	Amount    int64
	CreatedAt time.Time
}

// Ledger defines the contract implemented by ledger backends.
type Ledger interface {
	EnsureAccount(ctx context.Context, code string) error
	Balance(ctx context.Context, code string) (int64, error)
	// Transfer moves amount from one account to another. Reference ties the
	// posting to a domain object (order ID, withdrawal ID).
	Transfer(ctx context.Context, fromCode, toCode, kind, reference string, amount int64) (Transaction, error)
	// History lists transactions touching the account, newest first, along
	// with the total count for pagination.
	History(ctx context.Context, code string, page, limit int) ([]Transaction, int, error)
}

func mayOverdraw(code string) bool {
	return strings.HasPrefix(code, platformAccountPrefix)
}
