package handler

import (
	"context"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/verdantlabs/offsetd/internal/config"
	"github.com/verdantlabs/offsetd/internal/domain"
	"github.com/verdantlabs/offsetd/internal/service"
)

// memMerchantStore is an in-memory service.MerchantStore.
type memMerchantStore struct {
	byDomain map[string]*domain.Merchant
	nextID   int64
}

func newMemMerchantStore() *memMerchantStore {
	return &memMerchantStore{byDomain: map[string]*domain.Merchant{}}
}

func (s *memMerchantStore) GetByDomain(_ context.Context, shopDomain string) (*domain.Merchant, error) {
	m, ok := s.byDomain[shopDomain]
	if !ok {
		return nil, domain.ErrMerchantNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *memMerchantStore) Insert(_ context.Context, shopDomain string) (*domain.Merchant, error) {
	if _, ok := s.byDomain[shopDomain]; ok {
		return nil, domain.ErrMerchantExists
	}
	s.nextID++
	m := &domain.Merchant{ID: s.nextID, ShopDomain: shopDomain, CreatedAt: time.Now()}
	s.byDomain[shopDomain] = m
	copied := *m
	return &copied, nil
}

func (s *memMerchantStore) UpdateOverrides(_ context.Context, id int64, o domain.MerchantOverrides) error {
	for _, m := range s.byDomain {
		if m.ID == id {
			m.Placement = o.Placement
			m.Verbiage = o.Verbiage
			m.Rate = o.Rate
			return nil
		}
	}
	return domain.ErrMerchantNotFound
}

// memOptInStore is an in-memory service.OptInStore enforcing the
// (merchant, cart_token, month) uniqueness the real table has.
type memOptInStore struct {
	rows   []domain.OptIn
	nextID int64
	clock  time.Time
}

func newMemOptInStore() *memOptInStore {
	return &memOptInStore{clock: time.Now().UTC()}
}

func (s *memOptInStore) Insert(_ context.Context, o *domain.OptIn) (*domain.OptIn, error) {
	for _, row := range s.rows {
		if row.MerchantID == o.MerchantID && row.CartToken == o.CartToken && row.CreatedYM == o.CreatedYM {
			return nil, domain.ErrDuplicateOptIn
		}
	}
	s.nextID++
	s.clock = s.clock.Add(time.Second)
	saved := *o
	saved.ID = s.nextID
	saved.CreatedAt = s.clock
	s.rows = append(s.rows, saved)
	return &saved, nil
}

func (s *memOptInStore) ListByMonth(_ context.Context, merchantID int64, ym string, limit int) ([]domain.OptIn, error) {
	var out []domain.OptIn
	for _, row := range s.rows {
		if row.MerchantID == merchantID && row.CreatedYM == ym {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memOptInStore) MonthTotals(_ context.Context, merchantID int64, ym string) (domain.InvoicePreview, error) {
	var p domain.InvoicePreview
	for _, row := range s.rows {
		if row.MerchantID == merchantID && row.CreatedYM == ym {
			p.TotalEstimateCents += row.EstimateCents
			p.OptInCount++
		}
	}
	return p, nil
}

type testEnv struct {
	router    chi.Router
	merchants *memMerchantStore
	optIns    *memOptInStore
	cfg       *config.Config
}

func newTestEnv(adminToken string) *testEnv {
	cfg := &config.Config{
		AdminToken:       adminToken,
		OffsetRate:       decimal.RequireFromString("0.02"),
		DefaultPlacement: "#cart_container",
		DefaultVerbiage:  "Reduce my order's carbon footprint",
	}
	merchants := newMemMerchantStore()
	optIns := newMemOptInStore()

	h := New(Deps{
		Cfg:       cfg,
		Merchants: service.NewMerchantService(merchants),
		Estimator: service.NewEstimateService(),
		OptIns:    service.NewOptInService(optIns),
		Invoices:  service.NewInvoiceService(optIns),
	})

	r := chi.NewRouter()
	h.Register(r)

	return &testEnv{router: r, merchants: merchants, optIns: optIns, cfg: cfg}
}

func currentYearMonth() string {
	return time.Now().UTC().Format(config.YearMonthLayout)
}
