package ledger

import (
	"context"
	"errors"
	"testing"
)

func newTestLedger(t *testing.T, accounts ...string) Ledger {
	t.Helper()
	l := NewInMemory()
	for _, code := range accounts {
		if err := l.EnsureAccount(context.Background(), code); err != nil {
			t.Fatalf("ensure account %s: %v", code, err)
		}
	}
	return l
}

func TestTransferMovesBalance(t *testing.T) {
	ctx := context.Background()
	partner := PartnerAccount("p1")
	l := newTestLedger(t, PlatformFloatAccount, partner)

	tx, err := l.Transfer(ctx, PlatformFloatAccount, partner, KindDeliveryFee, "order-1", 4000)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if tx.Amount != 4000 || tx.Kind != KindDeliveryFee || tx.Reference != "order-1" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}

	balance, err := l.Balance(ctx, partner)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 4000 {
		t.Fatalf("partner balance = %d, want 4000", balance)
	}
}

func TestPlatformAccountsMayOverdraw(t *testing.T) {
	ctx := context.Background()
	partner := PartnerAccount("p1")
	l := newTestLedger(t, PlatformFloatAccount, partner)

	if _, err := l.Transfer(ctx, PlatformFloatAccount, partner, KindDeliveryFee, "order-1", 10000); err != nil {
		t.Fatalf("platform transfer should overdraw: %v", err)
	}
	balance, err := l.Balance(ctx, PlatformFloatAccount)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != -10000 {
		t.Fatalf("platform balance = %d, want -10000", balance)
	}
}

func TestPartnerAccountsCannotOverdraw(t *testing.T) {
	ctx := context.Background()
	partner := PartnerAccount("p1")
	l := newTestLedger(t, partner, PayoutPendingAccount)

	_, err := l.Transfer(ctx, partner, PayoutPendingAccount, KindWithdrawal, "w-1", 500)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestTransferUnknownAccount(t *testing.T) {
	l := newTestLedger(t, PlatformFloatAccount)
	_, err := l.Transfer(context.Background(), PlatformFloatAccount, "partner:nope", KindDeliveryFee, "o", 100)
	if !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("err = %v, want ErrUnknownAccount", err)
	}
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	partner := PartnerAccount("p1")
	l := newTestLedger(t, PlatformFloatAccount, partner)
	for _, amount := range []int64{0, -100} {
		if _, err := l.Transfer(context.Background(), PlatformFloatAccount, partner, KindDeliveryFee, "o", amount); err == nil {
			t.Fatalf("transfer of %d succeeded, want error", amount)
		}
	}
}

func TestHistoryNewestFirstAndPaged(t *testing.T) {
	ctx := context.Background()
	partner := PartnerAccount("p1")
	l := newTestLedger(t, PlatformFloatAccount, partner)

	refs := []string{"o1", "o2", "o3"}
	for _, ref := range refs {
		if _, err := l.Transfer(ctx, PlatformFloatAccount, partner, KindDeliveryFee, ref, 100); err != nil {
			t.Fatalf("transfer %s: %v", ref, err)
		}
	}

	txs, total, err := l.History(ctx, partner, 1, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(txs) != 2 || txs[0].Reference != "o3" || txs[1].Reference != "o2" {
		t.Fatalf("unexpected first page: %+v", txs)
	}

	txs, _, err = l.History(ctx, partner, 2, 2)
	if err != nil {
		t.Fatalf("history page 2: %v", err)
	}
	if len(txs) != 1 || txs[0].Reference != "o1" {
		t.Fatalf("unexpected second page: %+v", txs)
	}

	// Pages past the end are empty, not an error.
	txs, _, err = l.History(ctx, partner, 5, 2)
	if err != nil || len(txs) != 0 {
		t.Fatalf("out-of-range page: txs=%v err=%v", txs, err)
	}
}
