package handler

import (
	"encoding/json"
	"net/http"

	"github.com/verdantlabs/offsetd/internal/service"
)

// PostOptIn records a shopper's opt-in for the current month.
func (h *Handler) PostOptIn(w http.ResponseWriter, r *http.Request) {
	var req optInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CartToken == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "cart_token is required")
		return
	}

	m, err := h.merchants.ResolveOrCreate(r.Context(), req.Shop)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	_, err = h.optIns.Record(r.Context(), service.RecordParams{
		MerchantID:    m.ID,
		CartToken:     req.CartToken,
		Currency:      req.Currency,
		SubtotalCents: req.SubtotalCents,
		EstimateCents: req.EstimateCents,
		Payload:       req.Payload,
		CheckoutID:    req.CheckoutID,
		OrderID:       req.OrderID,
		Email:         req.Email,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}
