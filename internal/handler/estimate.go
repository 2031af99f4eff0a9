package handler

import (
	"encoding/json"
	"net/http"

	"github.com/verdantlabs/offsetd/internal/domain"
	"github.com/verdantlabs/offsetd/internal/service"
)

// PostEstimate computes the offset estimate for a cart using the
// merchant's effective rate.
func (h *Handler) PostEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	m, err := h.merchants.ResolveOrCreate(r.Context(), req.Shop)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	rate := service.EffectiveRate(m, h.cfg.OffsetRate)

	items := make([]domain.CartItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.CartItem{
			PriceCents:  it.PriceCents,
			Quantity:    it.Quantity,
			Grams:       it.Grams,
			ProductType: it.ProductType,
			Vendor:      it.Vendor,
		}
	}

	est, err := h.estimator.Estimate(items, rate)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, estimateResponse{
		Currency:      req.Currency,
		SubtotalCents: est.SubtotalCents,
		EstimateCents: est.EstimateCents,
		Rate:          rate.InexactFloat64(),
		Breakdown:     map[string]int{"items": len(req.Items)},
	})
}
