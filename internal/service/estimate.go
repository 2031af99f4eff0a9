package service

import (
	"github.com/shopspring/decimal"
	"github.com/verdantlabs/offsetd/internal/domain"
)

// EstimateService computes offset estimates from cart contents. Pure
// computation, no storage access.
type EstimateService struct{}

func NewEstimateService() *EstimateService {
	return &EstimateService{}
}

// Estimate sums the cart in integer minor units and applies the rate,
// rounding half to even. Negative prices or quantities are rejected.
func (s *EstimateService) Estimate(items []domain.CartItem, rate decimal.Decimal) (domain.Estimate, error) {
	var subtotal int64
	for _, it := range items {
		if it.PriceCents < 0 || it.Quantity < 0 {
			return domain.Estimate{}, domain.ErrInvalidInput
		}
		subtotal += it.PriceCents * it.Quantity
	}

	estimate := decimal.NewFromInt(subtotal).Mul(rate).RoundBank(0).IntPart()

	return domain.Estimate{
		SubtotalCents: subtotal,
		EstimateCents: estimate,
	}, nil
}
