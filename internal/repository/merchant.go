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

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type MerchantRepo struct {
	db *pgxpool.Pool
}

func NewMerchantRepo(db *pgxpool.Pool) *MerchantRepo {
	return &MerchantRepo{db: db}
}

const merchantColumns = `id, shop_domain, config_placement, config_verbiage, config_rate, api_key, created_at`

func (r *MerchantRepo) GetByDomain(ctx context.Context, shopDomain string) (*domain.Merchant, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE shop_domain = $1`,
		shopDomain,
	)
	m, err := scanMerchant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, fmt.Errorf("get merchant: %w", err)
	}
	return m, nil
}

// Insert creates a merchant with all overrides unset. Returns
// domain.ErrMerchantExists when another request created the row first;
// the caller falls back to a read.
func (r *MerchantRepo) Insert(ctx context.Context, shopDomain string) (*domain.Merchant, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO merchants (shop_domain) VALUES ($1) RETURNING `+merchantColumns,
		shopDomain,
	)
	m, err := scanMerchant(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrMerchantExists
		}
		return nil, fmt.Errorf("insert merchant: %w", err)
	}
	return m, nil
}

// UpdateOverrides replaces all three override fields at once.
func (r *MerchantRepo) UpdateOverrides(ctx context.Context, id int64, o domain.MerchantOverrides) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE merchants SET config_placement = $2, config_verbiage = $3, config_rate = $4 WHERE id = $1`,
		id, o.Placement, o.Verbiage, o.Rate,
	)
	if err != nil {
		return fmt.Errorf("update merchant overrides: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMerchantNotFound
	}
	return nil
}

func scanMerchant(row pgx.Row) (*domain.Merchant, error) {
	var m domain.Merchant
	err := row.Scan(
		&m.ID,
		&m.ShopDomain,
		&m.Placement,
		&m.Verbiage,
		&m.Rate,
		&m.APIKey,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
