package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/verdantlabs/offsetd/internal/domain"
)

// MerchantStore is the persistence surface the registry needs.
type MerchantStore interface {
	GetByDomain(ctx context.Context, shopDomain string) (*domain.Merchant, error)
	Insert(ctx context.Context, shopDomain string) (*domain.Merchant, error)
	UpdateOverrides(ctx context.Context, id int64, o domain.MerchantOverrides) error
}

type MerchantService struct {
	store MerchantStore
}

func NewMerchantService(store MerchantStore) *MerchantService {
	return &MerchantService{store: store}
}

// ResolveOrCreate looks a merchant up by shop domain, creating it on
// first reference. Concurrent first-time resolution races on the
// unique domain index; the loser of the race re-reads the winning row,
// so callers always get exactly one merchant per domain.
func (s *MerchantService) ResolveOrCreate(ctx context.Context, shopDomain string) (*domain.Merchant, error) {
	shopDomain = NormalizeDomain(shopDomain)
	if shopDomain == "" {
		return nil, domain.ErrInvalidInput
	}

	m, err := s.store.GetByDomain(ctx, shopDomain)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, domain.ErrMerchantNotFound) {
		return nil, fmt.Errorf("resolve merchant: %w", err)
	}

	m, err = s.store.Insert(ctx, shopDomain)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, domain.ErrMerchantExists) {
		return nil, fmt.Errorf("create merchant: %w", err)
	}

	// Lost the insert race; the row exists now.
	m, err = s.store.GetByDomain(ctx, shopDomain)
	if err != nil {
		return nil, fmt.Errorf("re-read merchant: %w", err)
	}
	return m, nil
}

// SetOverrides replaces the merchant's placement, verbiage and rate in
// one write. Absent fields are cleared, not preserved.
func (s *MerchantService) SetOverrides(ctx context.Context, merchantID int64, o domain.MerchantOverrides) error {
	if o.Rate != nil && o.Rate.IsNegative() {
		return domain.ErrInvalidInput
	}
	if err := s.store.UpdateOverrides(ctx, merchantID, o); err != nil {
		return fmt.Errorf("set overrides: %w", err)
	}
	return nil
}

// EffectiveRate returns the merchant's override rate when set, else the
// global default.
func EffectiveRate(m *domain.Merchant, defaultRate decimal.Decimal) decimal.Decimal {
	if m != nil && m.Rate != nil {
		return *m.Rate
	}
	return defaultRate
}

// NormalizeDomain canonicalizes a shop domain for use as a registry key.
func NormalizeDomain(shopDomain string) string {
	return strings.ToLower(strings.TrimSpace(shopDomain))
}
