package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/verdantlabs/offsetd/internal/domain"
)

// AdminGetMerchant returns the merchant's effective configuration with
// global defaults filled in for unset overrides.
func (h *Handler) AdminGetMerchant(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	m, err := h.merchants.ResolveOrCreate(r.Context(), shop)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	placement := h.cfg.DefaultPlacement
	if m.Placement != nil {
		placement = *m.Placement
	}
	verbiage := h.cfg.DefaultVerbiage
	if m.Verbiage != nil {
		verbiage = *m.Verbiage
	}
	rate := h.cfg.OffsetRate.InexactFloat64()
	if m.Rate != nil {
		rate = m.Rate.InexactFloat64()
	}

	respondJSON(w, http.StatusOK, merchantConfigBody{
		Placement: &placement,
		Verbiage:  &verbiage,
		Rate:      &rate,
	})
}

// AdminPutMerchant replaces all three merchant overrides. Every field
// must be present; this endpoint has no partial-patch semantics.
func (h *Handler) AdminPutMerchant(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")

	var body merchantConfigBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if body.Placement == nil || body.Verbiage == nil || body.Rate == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "placement, verbiage and rate are required")
		return
	}

	m, err := h.merchants.ResolveOrCreate(r.Context(), shop)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	rate := decimal.NewFromFloat(*body.Rate)
	err = h.merchants.SetOverrides(r.Context(), m.ID, domain.MerchantOverrides{
		Placement: body.Placement,
		Verbiage:  body.Verbiage,
		Rate:      &rate,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, body)
}

// AdminListOptIns returns a merchant's opt-ins for one month, most
// recent first.
func (h *Handler) AdminListOptIns(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	month := r.URL.Query().Get("month")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "limit must be an integer")
			return
		}
		limit = n
	}

	m, err := h.merchants.ResolveOrCreate(r.Context(), shop)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	rows, err := h.optIns.List(r.Context(), m.ID, month, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]optInRow, len(rows))
	for i, o := range rows {
		out[i] = optInRow{
			CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
			CartToken:     o.CartToken,
			SubtotalCents: o.SubtotalCents,
			EstimateCents: o.EstimateCents,
			Currency:      o.Currency,
			Payload:       o.Payload,
		}
	}
	respondJSON(w, http.StatusOK, out)
}
