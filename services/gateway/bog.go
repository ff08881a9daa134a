package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"motoslot/models"

	"go.uber.org/zap"
)

// BOGGateway integrates with the Bank of Georgia iPay checkout API.
type BOGGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewBOGGateway(baseURL, apiKey string, httpClient *http.Client, logger *zap.Logger) *BOGGateway {
	return &BOGGateway{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient, logger: logger}
}

type bogCreateRequest struct {
	Intent          string    `json:"intent"`
	Items           []bogItem `json:"items"`
	RedirectURL     string    `json:"redirect_url"`
	FailRedirectURL string    `json:"fail_redirect_url"`
	ShopOrderID     string    `json:"shop_order_id"`
}

type bogItem struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type bogCreateResponse struct {
	Links []bogLink `json:"links"`
}

type bogLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type bogOrderStatus struct {
	Status string `json:"status"`
}

func (g *BOGGateway) CreateSession(ctx context.Context, paymentID string, amount float64, currency, callbackURL string) (string, error) {
	body := bogCreateRequest{
		Intent:          "AUTHORIZE",
		Items:           []bogItem{{Amount: amount, Description: "MotoSlot Lesson Booking"}},
		RedirectURL:     fmt.Sprintf("%s?paymentId=%s&status=success", callbackURL, paymentID),
		FailRedirectURL: fmt.Sprintf("%s?paymentId=%s&status=fail", callbackURL, paymentID),
		ShopOrderID:     paymentID,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode bog request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/opay/api/v1/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build bog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("bog payment session: %w: %v", models.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("bog create order rejected",
			zap.String("paymentId", paymentID),
			zap.Int("status", resp.StatusCode),
		)
		return "", fmt.Errorf("bog payment session returned status %d: %w", resp.StatusCode, models.ErrGateway)
	}

	var out bogCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode bog response: %w", err)
	}
	for _, link := range out.Links {
		if link.Rel == "approve" {
			return link.Href, nil
		}
	}
	return "", fmt.Errorf("bog response missing approve link: %w", models.ErrGateway)
}

func (g *BOGGateway) Verify(ctx context.Context, transactionID string) (bool, error) {
	if transactionID == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/opay/api/v1/checkout/orders/"+transactionID, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build bog verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("bog verify: %w: %v", models.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("bog verify returned status %d: %w", resp.StatusCode, models.ErrGateway)
	}

	var out bogOrderStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("failed to decode bog verify response: %w", err)
	}
	return out.Status == "success", nil
}
