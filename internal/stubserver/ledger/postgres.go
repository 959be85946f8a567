package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists ledger postings in PostgreSQL, keeping each
// transfer balanced inside one database transaction.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// EnsureAccount guarantees an account row exists for the provided code.
func (l *PostgresLedger) EnsureAccount(ctx context.Context, code string) error {
	_, err := l.db.Exec(ctx, `INSERT INTO ledger_accounts (id, code, balance) VALUES ($1, $2, 0)
        ON CONFLICT (code) DO NOTHING`, uuid.New(), code)
	return err
}

// Balance returns the current balance for the account code.
func (l *PostgresLedger) Balance(ctx context.Context, code string) (int64, error) {
	var balance int64
	err := l.db.QueryRow(ctx, `SELECT balance FROM ledger_accounts WHERE code = $1`, code).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUnknownAccount
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Transfer records a balanced posting between two accounts.
func (l *PostgresLedger) Transfer(ctx context.Context, fromCode, toCode, kind, reference string, amount int64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInsufficientFunds
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var fromBalance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM ledger_accounts WHERE code = $1 FOR UPDATE`, fromCode).Scan(&fromBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrUnknownAccount
	}
	if err != nil {
		return Transaction{}, err
	}

	var toBalance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM ledger_accounts WHERE code = $1 FOR UPDATE`, toCode).Scan(&toBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrUnknownAccount
	}
	if err != nil {
		return Transaction{}, err
	}

	if fromBalance < amount && !mayOverdraw(fromCode) {
		return Transaction{}, ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE ledger_accounts SET balance = balance - $1 WHERE code = $2`, amount, fromCode); err != nil {
		return Transaction{}, err
	}
	if _, err := tx.Exec(ctx, `UPDATE ledger_accounts SET balance = balance + $1 WHERE code = $2`, amount, toCode); err != nil {
		return Transaction{}, err
	}

	record := Transaction{
		ID:        uuid.NewString(),
		Kind:      kind,
		Reference: reference,
		From:      fromCode,
		To:        toCode,
		Amount:    amount,
	}
	err = tx.QueryRow(ctx, `INSERT INTO ledger_transactions (id, kind, reference, from_code, to_code, amount, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, now())
        RETURNING created_at`,
		record.ID, record.Kind, record.Reference, record.From, record.To, record.Amount).Scan(&record.CreatedAt)
	if err != nil {
		return Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, err
	}
	return record, nil
}

// History lists transactions touching the account, newest first.
func (l *PostgresLedger) History(ctx context.Context, code string, page, limit int) ([]Transaction, int, error) {
	var total int
	err := l.db.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_transactions WHERE from_code = $1 OR to_code = $1`, code).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := l.db.Query(ctx, `SELECT id, kind, reference, from_code, to_code, amount, created_at
        FROM ledger_transactions
        WHERE from_code = $1 OR to_code = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`, code, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Kind, &t.Reference, &t.From, &t.To, &t.Amount, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		t.CreatedAt = t.CreatedAt.UTC()
		txs = append(txs, t)
	}
	return txs, total, rows.Err()
}

// Migrate creates the ledger schema if it does not exist. The stub server
// calls this at startup when a database is configured.
func (l *PostgresLedger) Migrate(ctx context.Context) error {
	const schema = `
    CREATE TABLE IF NOT EXISTS ledger_accounts (
        id UUID PRIMARY KEY,
        code TEXT UNIQUE NOT NULL,
        balance BIGINT NOT NULL DEFAULT 0
    );
    CREATE TABLE IF NOT EXISTS ledger_transactions (
        id UUID PRIMARY KEY,
        kind TEXT NOT NULL,
        reference TEXT NOT NULL,
        from_code TEXT NOT NULL,
        to_code TEXT NOT NULL,
        amount BIGINT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
    CREATE INDEX IF NOT EXISTS idx_ledger_tx_from ON ledger_transactions(from_code);
    CREATE INDEX IF NOT EXISTS idx_ledger_tx_to ON ledger_transactions(to_code);`
	if _, err := l.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}
