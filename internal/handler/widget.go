package handler

import "net/http"

// GetWidgetConfig serves the public widget configuration for a shop,
// creating the merchant on first reference.
func (h *Handler) GetWidgetConfig(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	m, err := h.merchants.ResolveOrCreate(r.Context(), shop)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := widgetConfigResponse{
		Placement: h.cfg.DefaultPlacement,
		Verbiage:  h.cfg.DefaultVerbiage,
	}
	if m.Placement != nil {
		resp.Placement = *m.Placement
	}
	if m.Verbiage != nil {
		resp.Verbiage = *m.Verbiage
	}
	respondJSON(w, http.StatusOK, resp)
}
