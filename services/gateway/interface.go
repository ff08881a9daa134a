package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"motoslot/config"
	"motoslot/models"

	"go.uber.org/zap"
)

// PaymentGateway is the capability boundary to one bank's payment API.
// Callers never branch on the concrete bank beyond selecting the adapter.
type PaymentGateway interface {
	// CreateSession registers a payment order with the bank and returns the
	// URL the client must be redirected to.
	CreateSession(ctx context.Context, paymentID string, amount float64, currency, callbackURL string) (string, error)
	// Verify reports whether the given transaction reference represents a
	// successful charge.
	Verify(ctx context.Context, transactionID string) (bool, error)
}

// Registry resolves a provider discriminator to its gateway adapter.
type Registry struct {
	gateways map[string]PaymentGateway
}

// NewRegistry builds the production registry with both bank adapters
// configured from AppConfig.
func NewRegistry(logger *zap.Logger) *Registry {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	return &Registry{
		gateways: map[string]PaymentGateway{
			models.ProviderTBC: NewTBCGateway(config.AppConfig.TBCBaseURL, config.AppConfig.TBCAPIKey, httpClient, logger),
			models.ProviderBOG: NewBOGGateway(config.AppConfig.BOGBaseURL, config.AppConfig.BOGAPIKey, httpClient, logger),
		},
	}
}

// NewRegistryWith builds a registry from explicit adapters.
func NewRegistryWith(gateways map[string]PaymentGateway) *Registry {
	return &Registry{gateways: gateways}
}

// For returns the adapter for the given provider discriminator.
func (r *Registry) For(provider string) (PaymentGateway, error) {
	gw, ok := r.gateways[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported payment provider %q: %w", provider, models.ErrInvalidArgument)
	}
	return gw, nil
}
