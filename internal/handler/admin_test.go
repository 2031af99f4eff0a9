package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminRequest(t *testing.T, env *testEnv, method, path, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	env := newTestEnv("secret")

	paths := []string{
		"/v1/admin/merchant?shop=shop.example.com",
		"/v1/admin/invoices?shop=shop.example.com&month=2026-01",
		"/v1/admin/opt-ins?shop=shop.example.com&month=2026-01",
	}
	for _, path := range paths {
		rec := adminRequest(t, env, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec = adminRequest(t, env, http.MethodGet, path, "wrong", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	// Auth failures must not create the merchant as a side effect.
	assert.Empty(t, env.merchants.byDomain)
}

func TestAdminGetMerchant_GlobalDefaults(t *testing.T) {
	env := newTestEnv("secret")

	rec := adminRequest(t, env, http.MethodGet, "/v1/admin/merchant?shop=shop.example.com", "secret", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp merchantConfigBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "#cart_container", *resp.Placement)
	assert.Equal(t, "Reduce my order's carbon footprint", *resp.Verbiage)
	assert.Equal(t, 0.02, *resp.Rate)
}

func TestAdminPutMerchant_RoundTrip(t *testing.T) {
	env := newTestEnv("secret")
	placement, verbiage, rate := "#checkout_footer", "Make my order carbon neutral", 0.03

	body := mustMarshal(t, merchantConfigBody{Placement: &placement, Verbiage: &verbiage, Rate: &rate})
	rec := adminRequest(t, env, http.MethodPut, "/v1/admin/merchant?shop=shop.example.com", "secret", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = adminRequest(t, env, http.MethodGet, "/v1/admin/merchant?shop=shop.example.com", "secret", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp merchantConfigBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, placement, *resp.Placement)
	assert.Equal(t, verbiage, *resp.Verbiage)
	assert.Equal(t, rate, *resp.Rate)

	// Public widget config reflects the overrides too.
	var widget widgetConfigResponse
	getJSON(t, env, "/v1/config?shop=shop.example.com", &widget)
	assert.Equal(t, placement, widget.Placement)
	assert.Equal(t, verbiage, widget.Verbiage)
}

func TestAdminPutMerchant_AllFieldsRequired(t *testing.T) {
	env := newTestEnv("secret")
	placement := "#checkout"

	body := mustMarshal(t, merchantConfigBody{Placement: &placement})
	rec := adminRequest(t, env, http.MethodPut, "/v1/admin/merchant?shop=shop.example.com", "secret", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminListOptIns_MostRecentFirst(t *testing.T) {
	env := newTestEnv("secret")
	ym := currentYearMonth()

	for _, token := range []string{"cart-1", "cart-2", "cart-3"} {
		rec := postJSON(t, env, "/v1/opt-in", optInRequest{
			Shop: "shop.example.com", CartToken: token, EstimateCents: 10,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := adminRequest(t, env, http.MethodGet,
		"/v1/admin/opt-ins?shop=shop.example.com&month="+ym, "secret", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []optInRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "cart-3", rows[0].CartToken)
	assert.Equal(t, "cart-1", rows[2].CartToken)
}

func TestAdminListOptIns_LimitApplies(t *testing.T) {
	env := newTestEnv("secret")
	ym := currentYearMonth()

	for _, token := range []string{"cart-1", "cart-2", "cart-3"} {
		postJSON(t, env, "/v1/opt-in", optInRequest{Shop: "shop.example.com", CartToken: token})
	}

	rec := adminRequest(t, env, http.MethodGet,
		"/v1/admin/opt-ins?shop=shop.example.com&month="+ym+"&limit=2", "secret", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []optInRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	assert.Len(t, rows, 2)
}

func TestAdminListOptIns_BadLimit(t *testing.T) {
	env := newTestEnv("secret")

	rec := adminRequest(t, env, http.MethodGet,
		"/v1/admin/opt-ins?shop=shop.example.com&month=2026-01&limit=abc", "secret", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes_DevModeBypass(t *testing.T) {
	env := newTestEnv("")

	rec := adminRequest(t, env, http.MethodGet, "/v1/admin/merchant?shop=shop.example.com", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
