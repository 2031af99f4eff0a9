package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/verdantlabs/offsetd/internal/config"
	"github.com/verdantlabs/offsetd/internal/domain"
	"github.com/verdantlabs/offsetd/internal/middleware"
	"github.com/verdantlabs/offsetd/internal/service"
)

// Handler holds all dependencies needed by the HTTP endpoints.
type Handler struct {
	cfg       *config.Config
	merchants *service.MerchantService
	estimator *service.EstimateService
	optIns    *service.OptInService
	invoices  *service.InvoiceService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg       *config.Config
	Merchants *service.MerchantService
	Estimator *service.EstimateService
	OptIns    *service.OptInService
	Invoices  *service.InvoiceService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:       deps.Cfg,
		merchants: deps.Merchants,
		estimator: deps.Estimator,
		optIns:    deps.OptIns,
		invoices:  deps.Invoices,
	}
}

// Register mounts all routes. Admin routes sit behind the bearer check.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/config", h.GetWidgetConfig)
		r.Post("/estimate", h.PostEstimate)
		r.Post("/opt-in", h.PostOptIn)
		r.Get("/invoices/preview", h.GetInvoicePreview)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(h.cfg.AdminToken))
			r.Get("/merchant", h.AdminGetMerchant)
			r.Put("/merchant", h.AdminPutMerchant)
			r.Get("/invoices", h.GetInvoicePreview)
			r.Get("/opt-ins", h.AdminListOptIns)
		})
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, errorResponse{Error: msg, Code: code})
}

// respondDomainError maps service errors onto the HTTP error envelope.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request")
	case errors.Is(err, domain.ErrDuplicateOptIn):
		respondError(w, http.StatusConflict, "conflict", "opt-in already recorded for this cart and month")
	case errors.Is(err, domain.ErrMerchantNotFound):
		respondError(w, http.StatusNotFound, "not_found", "merchant not found")
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
