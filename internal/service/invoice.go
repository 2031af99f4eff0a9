package service

import (
	"context"
	"fmt"

	"github.com/verdantlabs/offsetd/internal/domain"
)

// InvoiceService derives monthly invoice totals from the opt-in ledger.
// Nothing is stored; every preview recomputes from committed rows.
type InvoiceService struct {
	store OptInStore
}

func NewInvoiceService(store OptInStore) *InvoiceService {
	return &InvoiceService{store: store}
}

// Preview sums estimate amounts and counts opt-ins for one merchant
// and month. Months with no opt-ins yield zero totals.
func (s *InvoiceService) Preview(ctx context.Context, merchantID int64, ym string) (domain.InvoicePreview, error) {
	if err := ValidateYearMonth(ym); err != nil {
		return domain.InvoicePreview{}, err
	}
	p, err := s.store.MonthTotals(ctx, merchantID, ym)
	if err != nil {
		return domain.InvoicePreview{}, fmt.Errorf("invoice preview: %w", err)
	}
	return p, nil
}
