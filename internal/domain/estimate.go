package domain

// CartItem is one line of a shopper's cart as sent by the widget.
// Prices are integer minor-currency units. Grams, ProductType and
// Vendor are accepted for future footprint models but do not affect
// the estimate.
type CartItem struct {
	PriceCents  int64
	Quantity    int64
	Grams       *int64
	ProductType *string
	Vendor      *string
}

// Estimate is the transient result of the estimate computation.
type Estimate struct {
	SubtotalCents int64
	EstimateCents int64
}
