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

func TestBOGCreateSession(t *testing.T) {
	var got bogCreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/opay/api/v1/checkout/orders", r.URL.Path)
		assert.Equal(t, "Bearer bog-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"links": []map[string]string{
				{"href": "https://ipay.ge/self/order-1", "rel": "self"},
				{"href": "https://ipay.ge/checkout/order-1", "rel": "approve"},
			},
		})
	}))
	defer srv.Close()

	gw := NewBOGGateway(srv.URL, "bog-key", srv.Client(), zap.NewNop())
	url, err := gw.CreateSession(context.Background(), "pay-2", 200, "GEL", "https://app.example/callback")
	require.NoError(t, err)

	assert.Equal(t, "https://ipay.ge/checkout/order-1", url)
	assert.Equal(t, "AUTHORIZE", got.Intent)
	assert.Equal(t, "pay-2", got.ShopOrderID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, float64(200), got.Items[0].Amount)
	assert.Equal(t, "MotoSlot Lesson Booking", got.Items[0].Description)
	assert.Equal(t, "https://app.example/callback?paymentId=pay-2&status=success", got.RedirectURL)
}

func TestBOGCreateSessionMissingApproveLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"links": []map[string]string{{"href": "https://ipay.ge/self/order-1", "rel": "self"}},
		})
	}))
	defer srv.Close()

	gw := NewBOGGateway(srv.URL, "bog-key", srv.Client(), zap.NewNop())
	_, err := gw.CreateSession(context.Background(), "pay-2", 200, "GEL", "https://app.example/callback")
	assert.ErrorIs(t, err, models.ErrGateway)
}

func TestBOGVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/opay/api/v1/checkout/orders/order-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer srv.Close()

	gw := NewBOGGateway(srv.URL, "bog-key", srv.Client(), zap.NewNop())
	ok, err := gw.Verify(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBOGVerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "rejected"})
	}))
	defer srv.Close()

	gw := NewBOGGateway(srv.URL, "bog-key", srv.Client(), zap.NewNop())
	ok, err := gw.Verify(context.Background(), "order-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistryFor(t *testing.T) {
	tbc := &TBCGateway{}
	r := NewRegistryWith(map[string]PaymentGateway{models.ProviderTBC: tbc})

	gw, err := r.For(models.ProviderTBC)
	require.NoError(t, err)
	assert.Same(t, tbc, gw)

	_, err = r.For("stripe")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}
