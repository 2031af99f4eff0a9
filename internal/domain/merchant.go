package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Merchant is a shop known to the estimator, keyed by its domain.
// Override fields are nil until an admin configures them; readers fall
// back to the global defaults.
type Merchant struct {
	ID         int64
	ShopDomain string
	Placement  *string
	Verbiage   *string
	Rate       *decimal.Decimal
	APIKey     *string
	CreatedAt  time.Time
}

// MerchantOverrides is the full set of per-merchant configuration.
// Admin writes replace all three fields at once; there is no partial
// patch.
type MerchantOverrides struct {
	Placement *string
	Verbiage  *string
	Rate      *decimal.Decimal
}
