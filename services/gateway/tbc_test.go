package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"motoslot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTBCCreateSession(t *testing.T) {
	var got tbcCreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/tpay/payments", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"links": map[string]string{"redirect": "https://tpay.tbc.ge/checkout/abc"},
		})
	}))
	defer srv.Close()

	gw := NewTBCGateway(srv.URL, "test-key", srv.Client(), zap.NewNop())
	url, err := gw.CreateSession(context.Background(), "pay-1", 150, "GEL", "https://app.example/callback")
	require.NoError(t, err)

	assert.Equal(t, "https://tpay.tbc.ge/checkout/abc", url)
	assert.Equal(t, "GEL", got.Amount.Currency)
	assert.Equal(t, float64(150), got.Amount.Total)
	assert.Equal(t, "pay-1", got.MerchantPaymentID)
	assert.Equal(t, "https://app.example/callback?paymentId=pay-1&status=success", got.ReturnURL)
	assert.Equal(t, "https://app.example/callback?paymentId=pay-1&status=fail", got.FailURL)
}

func TestTBCCreateSessionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	gw := NewTBCGateway(srv.URL, "bad-key", srv.Client(), zap.NewNop())
	_, err := gw.CreateSession(context.Background(), "pay-1", 150, "GEL", "https://app.example/callback")
	assert.ErrorIs(t, err, models.ErrGateway)
}

func TestTBCCreateSessionMissingRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"links": map[string]string{}})
	}))
	defer srv.Close()

	gw := NewTBCGateway(srv.URL, "test-key", srv.Client(), zap.NewNop())
	_, err := gw.CreateSession(context.Background(), "pay-1", 150, "GEL", "https://app.example/callback")
	assert.ErrorIs(t, err, models.ErrGateway)
}

func TestTBCVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tpay/payments/txn-9", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "Succeeded"})
	}))
	defer srv.Close()

	gw := NewTBCGateway(srv.URL, "test-key", srv.Client(), zap.NewNop())
	ok, err := gw.Verify(context.Background(), "txn-9")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTBCVerifyNotSucceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "Created"})
	}))
	defer srv.Close()

	gw := NewTBCGateway(srv.URL, "test-key", srv.Client(), zap.NewNop())
	ok, err := gw.Verify(context.Background(), "txn-9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTBCVerifyEmptyTransactionID(t *testing.T) {
	// No HTTP call at all for a missing reference.
	gw := NewTBCGateway("http://unused.invalid", "test-key", http.DefaultClient, zap.NewNop())
	ok, err := gw.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTBCVerifyUnknownTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	gw := NewTBCGateway(srv.URL, "test-key", srv.Client(), zap.NewNop())
	ok, err := gw.Verify(context.Background(), "txn-unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}
