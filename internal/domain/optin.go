package domain

import "time"

// OptIn is one recorded shopper consent to pay the offset estimate.
// Rows are immutable once written. (merchant_id, cart_token, created_ym)
// is unique: the same cart can opt in at most once per month.
type OptIn struct {
	ID            int64
	MerchantID    int64
	CartToken     string
	Currency      string
	SubtotalCents int64
	EstimateCents int64
	Payload       map[string]any
	CreatedAt     time.Time
	CreatedYM     string
	CheckoutID    *string
	OrderID       *string
	Email         *string
}

// InvoicePreview is the derived monthly total for a merchant. Never
// stored; recomputed from opt-in rows on every read.
type InvoicePreview struct {
	TotalEstimateCents int64
	OptInCount         int64
}
