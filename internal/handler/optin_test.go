package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostOptIn_RecordsOnce(t *testing.T) {
	env := newTestEnv("")
	body := optInRequest{
		Shop:          "shop.example.com",
		CartToken:     "cart-abc",
		Currency:      "USD",
		SubtotalCents: 2500,
		EstimateCents: 50,
		Payload:       map[string]any{"source": "checkout"},
	}

	rec := postJSON(t, env, "/v1/opt-in", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	// Same cart token in the same month conflicts.
	rec = postJSON(t, env, "/v1/opt-in", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A different cart token is fine.
	body.CartToken = "cart-def"
	rec = postJSON(t, env, "/v1/opt-in", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPostOptIn_MissingCartToken(t *testing.T) {
	env := newTestEnv("")

	rec := postJSON(t, env, "/v1/opt-in", optInRequest{Shop: "shop.example.com"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostOptIn_ConflictLeavesTotalsUnchanged(t *testing.T) {
	env := newTestEnv("")
	body := optInRequest{
		Shop:          "shop.example.com",
		CartToken:     "cart-abc",
		SubtotalCents: 2500,
		EstimateCents: 50,
	}

	postJSON(t, env, "/v1/opt-in", body)
	postJSON(t, env, "/v1/opt-in", body) // conflict

	preview, err := env.optIns.MonthTotals(context.Background(), 1, currentYearMonth())
	require.NoError(t, err)
	assert.Equal(t, int64(1), preview.OptInCount)
	assert.Equal(t, int64(50), preview.TotalEstimateCents)
}
