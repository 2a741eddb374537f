package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/matchpoint-app/backend/internal/config"
)

// Charge statuses reported by the processor.
const (
	StatusSucceeded = "succeeded"
	StatusDeclined  = "declined"
)

// Client talks to the external payment processor. The processor is an opaque
// HTTP API; charges are created synchronously and the response carries the
// final status.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.PaymentsConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type ChargeRequest struct {
	AmountCents    int    `json:"amount_cents"`
	Currency       string `json:"currency"`
	Reference      string `json:"reference"`
	IdempotencyKey string `json:"idempotency_key"`
}

type Charge struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateCharge submits a charge and returns the processor's verdict. A
// declined charge is not an error; callers inspect Charge.Status.
func (c *Client) CreateCharge(ctx context.Context, req *ChargeRequest) (*Charge, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("payment processor returned %d: %s", resp.StatusCode, string(data))
	}

	var charge Charge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("failed to decode charge response: %w", err)
	}
	return &charge, nil
}
