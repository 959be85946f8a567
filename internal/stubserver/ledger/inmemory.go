package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemoryLedger struct {
	mu           sync.RWMutex
	balances     map[string]int64
	transactions []Transaction
}

// NewInMemory creates a concurrency-safe in-memory ledger used by tests and
// the zero-config stub server.
func NewInMemory() Ledger {
	return &inMemoryLedger{balances: make(map[string]int64)}
}

func (l *inMemoryLedger) EnsureAccount(_ context.Context, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.balances[code]; !exists {
		l.balances[code] = 0
	}
	return nil
}

func (l *inMemoryLedger) Balance(_ context.Context, code string) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	balance, exists := l.balances[code]
	if !exists {
		return 0, ErrUnknownAccount
	}
	return balance, nil
}

func (l *inMemoryLedger) Transfer(_ context.Context, fromCode, toCode, kind, reference string, amount int64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInsufficientFunds
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fromBalance, ok := l.balances[fromCode]
	if !ok {
		return Transaction{}, ErrUnknownAccount
	}
	toBalance, ok := l.balances[toCode]
	if !ok {
		return Transaction{}, ErrUnknownAccount
	}
	if fromBalance < amount && !mayOverdraw(fromCode) {
		return Transaction{}, ErrInsufficientFunds
	}

	l.balances[fromCode] = fromBalance - amount
	l.balances[toCode] = toBalance + amount

	tx := Transaction{
		ID:        uuid.NewString(),
		Kind:      kind,
		Reference: reference,
		From:      fromCode,
		To:        toCode,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	l.transactions = append(l.transactions, tx)
	return tx, nil
}

func (l *inMemoryLedger) History(_ context.Context, code string, page, limit int) ([]Transaction, int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []Transaction
	for i := len(l.transactions) - 1; i >= 0; i-- {
		tx := l.transactions[i]
		if tx.From == code || tx.To == code {
			matched = append(matched, tx)
		}
	}

	total := len(matched)
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}
