package service

import (
	"context"
	"fmt"
	"time"

	"github.com/verdantlabs/offsetd/internal/config"
	"github.com/verdantlabs/offsetd/internal/domain"
)

// OptInStore is the persistence surface the ledger needs.
type OptInStore interface {
	Insert(ctx context.Context, o *domain.OptIn) (*domain.OptIn, error)
	ListByMonth(ctx context.Context, merchantID int64, ym string, limit int) ([]domain.OptIn, error)
	MonthTotals(ctx context.Context, merchantID int64, ym string) (domain.InvoicePreview, error)
}

type OptInService struct {
	store OptInStore
	now   func() time.Time
}

func NewOptInService(store OptInStore) *OptInService {
	return &OptInService{store: store, now: time.Now}
}

// RecordParams carries one opt-in event from the checkout widget.
type RecordParams struct {
	MerchantID    int64
	CartToken     string
	Currency      string
	SubtotalCents int64
	EstimateCents int64
	Payload       map[string]any
	CheckoutID    *string
	OrderID       *string
	Email         *string
}

// Record appends an opt-in to the ledger, partitioned by the current
// UTC year-month. A repeat opt-in for the same cart in the same month
// returns domain.ErrDuplicateOptIn.
func (s *OptInService) Record(ctx context.Context, p RecordParams) (*domain.OptIn, error) {
	if p.CartToken == "" || p.SubtotalCents < 0 || p.EstimateCents < 0 {
		return nil, domain.ErrInvalidInput
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.Payload == nil {
		p.Payload = map[string]any{}
	}

	o := &domain.OptIn{
		MerchantID:    p.MerchantID,
		CartToken:     p.CartToken,
		Currency:      p.Currency,
		SubtotalCents: p.SubtotalCents,
		EstimateCents: p.EstimateCents,
		Payload:       p.Payload,
		CreatedYM:     s.now().UTC().Format(config.YearMonthLayout),
		CheckoutID:    p.CheckoutID,
		OrderID:       p.OrderID,
		Email:         p.Email,
	}

	saved, err := s.store.Insert(ctx, o)
	if err != nil {
		if err == domain.ErrDuplicateOptIn {
			return nil, err
		}
		return nil, fmt.Errorf("record opt-in: %w", err)
	}
	return saved, nil
}

// List returns a merchant's opt-ins for one month, most recent first.
// A non-positive limit falls back to the default; oversized limits are
// capped.
func (s *OptInService) List(ctx context.Context, merchantID int64, ym string, limit int) ([]domain.OptIn, error) {
	if err := ValidateYearMonth(ym); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = config.DefaultOptInListLimit
	}
	if limit > config.MaxOptInListLimit {
		limit = config.MaxOptInListLimit
	}
	rows, err := s.store.ListByMonth(ctx, merchantID, ym, limit)
	if err != nil {
		return nil, fmt.Errorf("list opt-ins: %w", err)
	}
	return rows, nil
}

// ValidateYearMonth checks the YYYY-MM partition key format.
func ValidateYearMonth(ym string) error {
	if _, err := time.Parse(config.YearMonthLayout, ym); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}
