package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPartners stores partner accounts in PostgreSQL.
type PostgresPartners struct {
	db *pgxpool.Pool
}

// NewPostgresPartners builds a partner repository backed by PostgreSQL.
func NewPostgresPartners(db *pgxpool.Pool) *PostgresPartners {
	return &PostgresPartners{db: db}
}

func (r *PostgresPartners) Create(ctx context.Context, p Partner) error {
	_, err := r.db.Exec(ctx, `INSERT INTO partners
        (id, phone, name, email, vehicle_type, vehicle_number, kyc_status, is_online, rating, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Phone, p.Name, p.Email, p.VehicleType, p.VehicleNumber, p.KYCStatus, p.IsOnline, p.Rating, p.CreatedAt.UTC())
	return err
}

func (r *PostgresPartners) scanRow(row pgx.Row) (Partner, error) {
	var p Partner
	err := row.Scan(&p.ID, &p.Phone, &p.Name, &p.Email, &p.VehicleType, &p.VehicleNumber,
		&p.KYCStatus, &p.IsOnline, &p.Rating, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Partner{}, ErrNotFound
	}
	if err != nil {
		return Partner{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

const partnerColumns = `id, phone, name, email, vehicle_type, vehicle_number, kyc_status, is_online, rating, created_at`

func (r *PostgresPartners) FindByPhone(ctx context.Context, phone string) (Partner, error) {
	row := r.db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE phone = $1`, phone)
	return r.scanRow(row)
}

func (r *PostgresPartners) FindByID(ctx context.Context, id string) (Partner, error) {
	row := r.db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id)
	return r.scanRow(row)
}

func (r *PostgresPartners) Update(ctx context.Context, p Partner) error {
	tag, err := r.db.Exec(ctx, `UPDATE partners SET
        phone = $2, name = $3, email = $4, vehicle_type = $5, vehicle_number = $6,
        kyc_status = $7, is_online = $8, rating = $9
        WHERE id = $1`,
		p.ID, p.Phone, p.Name, p.Email, p.VehicleType, p.VehicleNumber, p.KYCStatus, p.IsOnline, p.Rating)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPartners) List(ctx context.Context, page, limit int) ([]Partner, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM partners`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, `SELECT `+partnerColumns+` FROM partners
        ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []Partner
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *PostgresPartners) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM partners`).Scan(&n)
	return n, err
}

// PostgresOrders stores orders in PostgreSQL. Items are kept as JSONB.
type PostgresOrders struct {
	db *pgxpool.Pool
}

// NewPostgresOrders builds an order repository backed by PostgreSQL.
func NewPostgresOrders(db *pgxpool.Pool) *PostgresOrders {
	return &PostgresOrders{db: db}
}

const orderColumns = `id, partner_id, vendor_id, vendor_name, customer_name, customer_phone,
    pickup_address, drop_address, items, amount, delivery_fee, distance_km, status, prep_status, created_at, updated_at`

func (r *PostgresOrders) Create(ctx context.Context, o Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO orders
        (id, partner_id, vendor_id, vendor_name, customer_name, customer_phone,
         pickup_address, drop_address, items, amount, delivery_fee, distance_km, status, prep_status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)`,
		o.ID, o.PartnerID, o.VendorID, o.VendorName, o.CustomerName, o.CustomerPhone,
		o.PickupAddress, o.DropAddress, items, o.Amount, o.DeliveryFee, o.DistanceKm, o.Status, o.PrepStatus, o.CreatedAt.UTC())
	return err
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var items []byte
	err := row.Scan(&o.ID, &o.PartnerID, &o.VendorID, &o.VendorName, &o.CustomerName, &o.CustomerPhone,
		&o.PickupAddress, &o.DropAddress, &items, &o.Amount, &o.DeliveryFee, &o.DistanceKm,
		&o.Status, &o.PrepStatus, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return Order{}, err
		}
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}

func (r *PostgresOrders) Get(ctx context.Context, id string) (Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (r *PostgresOrders) Update(ctx context.Context, o Order) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET
        partner_id = $2, status = $3, prep_status = $4, updated_at = now()
        WHERE id = $1`, o.ID, o.PartnerID, o.Status, o.PrepStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresOrders) Claim(ctx context.Context, orderID, partnerID string) (Order, error) {
	row := r.db.QueryRow(ctx, `UPDATE orders SET partner_id = $2, status = $3, updated_at = now()
        WHERE id = $1 AND status = $4
        RETURNING `+orderColumns, orderID, partnerID, OrderAccepted, OrderPending)
	o, err := scanOrder(row)
	if errors.Is(err, ErrNotFound) {
		// Distinguish "gone" from "already claimed" for a cleaner message.
		if _, getErr := r.Get(ctx, orderID); getErr == nil {
			return Order{}, errors.New("order is no longer available")
		}
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *PostgresOrders) listWhere(ctx context.Context, where string, args []any, page, limit int) ([]Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		orderColumns, where, limit, (page-1)*limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *PostgresOrders) ListAvailable(ctx context.Context, page, limit int) ([]Order, int, error) {
	return r.listWhere(ctx, `status = $1`, []any{OrderPending}, page, limit)
}

func (r *PostgresOrders) ListActive(ctx context.Context, partnerID string, page, limit int) ([]Order, int, error) {
	return r.listWhere(ctx, `partner_id = $1 AND status NOT IN ($2, $3)`,
		[]any{partnerID, OrderPending, OrderDelivered}, page, limit)
}

func (r *PostgresOrders) ListDelivered(ctx context.Context, partnerID string, page, limit int) ([]Order, int, error) {
	return r.listWhere(ctx, `partner_id = $1 AND status = $2`, []any{partnerID, OrderDelivered}, page, limit)
}

func (r *PostgresOrders) ListByVendor(ctx context.Context, vendorID string, page, limit int) ([]Order, int, error) {
	return r.listWhere(ctx, `vendor_id = $1`, []any{vendorID}, page, limit)
}

func (r *PostgresOrders) Totals(ctx context.Context) (int, int64, error) {
	var count int
	var revenue int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*),
        COALESCE(SUM(amount) FILTER (WHERE status = $1), 0) FROM orders`, OrderDelivered).Scan(&count, &revenue)
	return count, revenue, err
}

func (r *PostgresOrders) DailySeries(ctx context.Context, days int) ([]DailyStat, error) {
	rows, err := r.db.Query(ctx, `SELECT to_char(created_at, 'YYYY-MM-DD') AS day,
        COUNT(*), COALESCE(SUM(amount) FILTER (WHERE status = $1), 0)
        FROM orders
        WHERE created_at >= now() - ($2 || ' days')::interval
        GROUP BY day ORDER BY day`, OrderDelivered, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []DailyStat
	for rows.Next() {
		var s DailyStat
		if err := rows.Scan(&s.Date, &s.Orders, &s.Revenue); err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

// PostgresWithdrawals stores payout requests in PostgreSQL.
type PostgresWithdrawals struct {
	db *pgxpool.Pool
}

// NewPostgresWithdrawals builds a withdrawal repository backed by PostgreSQL.
func NewPostgresWithdrawals(db *pgxpool.Pool) *PostgresWithdrawals {
	return &PostgresWithdrawals{db: db}
}

func (r *PostgresWithdrawals) Create(ctx context.Context, w Withdrawal) error {
	_, err := r.db.Exec(ctx, `INSERT INTO withdrawals (id, partner_id, amount, status, reference, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.PartnerID, w.Amount, w.Status, w.Reference, w.CreatedAt.UTC())
	return err
}

func (r *PostgresWithdrawals) ListByPartner(ctx context.Context, partnerID string, page, limit int) ([]Withdrawal, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawals WHERE partner_id = $1`, partnerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, partner_id, amount, status, reference, created_at
        FROM withdrawals WHERE partner_id = $1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`, partnerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Withdrawal
	for rows.Next() {
		var w Withdrawal
		if err := rows.Scan(&w.ID, &w.PartnerID, &w.Amount, &w.Status, &w.Reference, &w.CreatedAt); err != nil {
			return nil, 0, err
		}
		w.CreatedAt = w.CreatedAt.UTC()
		out = append(out, w)
	}
	return out, total, rows.Err()
}

// Migrate creates the core flow tables if they do not exist.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	const schema = `
    CREATE TABLE IF NOT EXISTS partners (
        id UUID PRIMARY KEY,
        phone TEXT UNIQUE NOT NULL,
        name TEXT NOT NULL DEFAULT '',
        email TEXT NOT NULL DEFAULT '',
        vehicle_type TEXT NOT NULL DEFAULT '',
        vehicle_number TEXT NOT NULL DEFAULT '',
        kyc_status TEXT NOT NULL,
        is_online BOOLEAN NOT NULL DEFAULT FALSE,
        rating DOUBLE PRECISION NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL
    );
    CREATE TABLE IF NOT EXISTS orders (
        id UUID PRIMARY KEY,
        partner_id TEXT NOT NULL DEFAULT '',
        vendor_id TEXT NOT NULL DEFAULT '',
        vendor_name TEXT NOT NULL DEFAULT '',
        customer_name TEXT NOT NULL DEFAULT '',
        customer_phone TEXT NOT NULL DEFAULT '',
        pickup_address TEXT NOT NULL DEFAULT '',
        drop_address TEXT NOT NULL DEFAULT '',
        items JSONB NOT NULL DEFAULT '[]',
        amount BIGINT NOT NULL DEFAULT 0,
        delivery_fee BIGINT NOT NULL DEFAULT 0,
        distance_km DOUBLE PRECISION NOT NULL DEFAULT 0,
        status TEXT NOT NULL,
        prep_status TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
    CREATE INDEX IF NOT EXISTS idx_orders_partner ON orders(partner_id);
    CREATE TABLE IF NOT EXISTS withdrawals (
        id UUID PRIMARY KEY,
        partner_id TEXT NOT NULL,
        amount BIGINT NOT NULL,
        status TEXT NOT NULL,
        reference TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_withdrawals_partner ON withdrawals(partner_id);`
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate stub schema: %w", err)
	}
	return nil
}
