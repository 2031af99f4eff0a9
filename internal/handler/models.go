package handler

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type widgetConfigResponse struct {
	Placement string `json:"placement"`
	Verbiage  string `json:"verbiage"`
}

type cartItemDTO struct {
	PriceCents  int64   `json:"price_cents"`
	Quantity    int64   `json:"quantity"`
	Grams       *int64  `json:"grams,omitempty"`
	ProductType *string `json:"product_type,omitempty"`
	Vendor      *string `json:"vendor,omitempty"`
}

type estimateRequest struct {
	Shop     string        `json:"shop"`
	Currency string        `json:"currency"`
	Items    []cartItemDTO `json:"items"`
}

type estimateResponse struct {
	Currency      string         `json:"currency"`
	SubtotalCents int64          `json:"subtotal_cents"`
	EstimateCents int64          `json:"estimate_cents"`
	Rate          float64        `json:"rate"`
	Breakdown     map[string]int `json:"breakdown"`
}

type optInRequest struct {
	Shop          string         `json:"shop"`
	CartToken     string         `json:"cart_token"`
	Currency      string         `json:"currency"`
	SubtotalCents int64          `json:"subtotal_cents"`
	EstimateCents int64          `json:"estimate_cents"`
	Payload       map[string]any `json:"payload"`
	CheckoutID    *string        `json:"checkout_id,omitempty"`
	OrderID       *string        `json:"order_id,omitempty"`
	Email         *string        `json:"email,omitempty"`
}

type invoicePreviewResponse struct {
	Shop               string `json:"shop"`
	Month              string `json:"month"`
	TotalEstimateCents int64  `json:"total_estimate_cents"`
	OptInCount         int64  `json:"opt_in_count"`
}

// merchantConfigBody is both the admin PUT request and the admin GET
// response. On PUT every field is required: the write replaces all
// three overrides, there is no partial patch.
type merchantConfigBody struct {
	Placement *string  `json:"placement"`
	Verbiage  *string  `json:"verbiage"`
	Rate      *float64 `json:"rate"`
}

type optInRow struct {
	CreatedAt     string         `json:"created_at"`
	CartToken     string         `json:"cart_token"`
	SubtotalCents int64          `json:"subtotal_cents"`
	EstimateCents int64          `json:"estimate_cents"`
	Currency      string         `json:"currency"`
	Payload       map[string]any `json:"payload"`
}
