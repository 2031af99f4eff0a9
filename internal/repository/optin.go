package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/verdantlabs/offsetd/internal/domain"
)

type OptInRepo struct {
	db *pgxpool.Pool
}

func NewOptInRepo(db *pgxpool.Pool) *OptInRepo {
	return &OptInRepo{db: db}
}

// Insert persists a new opt-in row. The composite unique index on
// (merchant_id, cart_token, created_ym) rejects a second opt-in for the
// same cart in the same month; that surfaces as domain.ErrDuplicateOptIn.
func (r *OptInRepo) Insert(ctx context.Context, o *domain.OptIn) (*domain.OptIn, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO opt_ins (merchant_id, cart_token, currency, subtotal_cents, estimate_cents, payload, created_ym, checkout_id, order_id, email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		o.MerchantID, o.CartToken, o.Currency, o.SubtotalCents, o.EstimateCents,
		o.Payload, o.CreatedYM, o.CheckoutID, o.OrderID, o.Email,
	)
	saved := *o
	if err := row.Scan(&saved.ID, &saved.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateOptIn
		}
		return nil, fmt.Errorf("insert opt-in: %w", err)
	}
	return &saved, nil
}

// ListByMonth returns a merchant's opt-ins for one partition,
// most recent first.
func (r *OptInRepo) ListByMonth(ctx context.Context, merchantID int64, ym string, limit int) ([]domain.OptIn, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, merchant_id, cart_token, currency, subtotal_cents, estimate_cents, payload, created_at, created_ym, checkout_id, order_id, email
		 FROM opt_ins
		 WHERE merchant_id = $1 AND created_ym = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		merchantID, ym, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list opt-ins: %w", err)
	}
	defer rows.Close()

	var out []domain.OptIn
	for rows.Next() {
		var o domain.OptIn
		err := rows.Scan(
			&o.ID,
			&o.MerchantID,
			&o.CartToken,
			&o.Currency,
			&o.SubtotalCents,
			&o.EstimateCents,
			&o.Payload,
			&o.CreatedAt,
			&o.CreatedYM,
			&o.CheckoutID,
			&o.OrderID,
			&o.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan opt-in: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list opt-ins: %w", err)
	}
	return out, nil
}

// MonthTotals sums estimate amounts and counts rows for one partition.
func (r *OptInRepo) MonthTotals(ctx context.Context, merchantID int64, ym string) (domain.InvoicePreview, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(estimate_cents), 0), COUNT(*)
		 FROM opt_ins
		 WHERE merchant_id = $1 AND created_ym = $2`,
		merchantID, ym,
	)
	var p domain.InvoicePreview
	if err := row.Scan(&p.TotalEstimateCents, &p.OptInCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.InvoicePreview{}, nil
		}
		return domain.InvoicePreview{}, fmt.Errorf("month totals: %w", err)
	}
	return p, nil
}
