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

// TBCGateway integrates with the TBC Bank TPAY checkout API.
type TBCGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewTBCGateway(baseURL, apiKey string, httpClient *http.Client, logger *zap.Logger) *TBCGateway {
	return &TBCGateway{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient, logger: logger}
}

type tbcCreateRequest struct {
	Amount            tbcAmount `json:"amount"`
	ReturnURL         string    `json:"returnurl"`
	FailURL           string    `json:"failurl"`
	MerchantPaymentID string    `json:"merchant_paymentid"`
}

type tbcAmount struct {
	Currency string  `json:"currency"`
	Total    float64 `json:"total"`
}

type tbcCreateResponse struct {
	Links struct {
		Redirect string `json:"redirect"`
	} `json:"links"`
}

type tbcPaymentStatus struct {
	Status string `json:"status"`
}

func (g *TBCGateway) CreateSession(ctx context.Context, paymentID string, amount float64, currency, callbackURL string) (string, error) {
	body := tbcCreateRequest{
		Amount:            tbcAmount{Currency: currency, Total: amount},
		ReturnURL:         fmt.Sprintf("%s?paymentId=%s&status=success", callbackURL, paymentID),
		FailURL:           fmt.Sprintf("%s?paymentId=%s&status=fail", callbackURL, paymentID),
		MerchantPaymentID: paymentID,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode tbc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/tpay/payments", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build tbc request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tbc payment session: %w: %v", models.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.Warn("tbc create session rejected",
			zap.String("paymentId", paymentID),
			zap.Int("status", resp.StatusCode),
		)
		return "", fmt.Errorf("tbc payment session returned status %d: %w", resp.StatusCode, models.ErrGateway)
	}

	var out tbcCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode tbc response: %w", err)
	}
	if out.Links.Redirect == "" {
		return "", fmt.Errorf("tbc response missing redirect link: %w", models.ErrGateway)
	}
	return out.Links.Redirect, nil
}

func (g *TBCGateway) Verify(ctx context.Context, transactionID string) (bool, error) {
	if transactionID == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/tpay/payments/"+transactionID, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build tbc verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("tbc verify: %w: %v", models.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("tbc verify returned status %d: %w", resp.StatusCode, models.ErrGateway)
	}

	var out tbcPaymentStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("failed to decode tbc verify response: %w", err)
	}
	return out.Status == "Succeeded", nil
}
