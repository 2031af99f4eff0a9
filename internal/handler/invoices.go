package handler

import "net/http"

// GetInvoicePreview returns the derived monthly invoice totals for a
// shop. Serves both the public preview route and the admin one.
func (h *Handler) GetInvoicePreview(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	month := r.URL.Query().Get("month")

	m, err := h.merchants.ResolveOrCreate(r.Context(), shop)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	preview, err := h.invoices.Preview(r.Context(), m.ID, month)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoicePreviewResponse{
		Shop:               m.ShopDomain,
		Month:              month,
		TotalEstimateCents: preview.TotalEstimateCents,
		OptInCount:         preview.OptInCount,
	})
}
