package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/errs"
)

var (
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	ErrGatewayRejected    = errs.New("payment gateway rejected the request")
)

// Client talks to the payment provider's REST API. Every call carries the
// caller's context and the configured timeout; a timed-out order creation is
// safe to retry because the booking only records the reference after success.
type Client struct {
	baseURL    string
	keyID      string
	secret     string
	httpClient *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		keyID:   cfg.KeyID,
		secret:  cfg.Secret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) CreateOrder(ctx context.Context, amountCents int64, currency string, receipt string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	body := map[string]any{
		"amount":   amountCents,
		"currency": currency,
		"receipt":  receipt,
	}
	if err := c.post(ctx, "/v1/orders", body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errs.Wrap(ErrGatewayRejected, "empty order id in response")
	}
	return out.ID, nil
}

func (c *Client) Refund(ctx context.Context, paymentRef string, amountCents int64) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	body := map[string]any{
		"payment_id": paymentRef,
		"amount":     amountCents,
	}
	if err := c.post(ctx, "/v1/refunds", body, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errs.Wrap(ErrGatewayRejected, "empty refund id in response")
	}
	return out.ID, nil
}

func (c *Client) post(ctx context.Context, path string, body map[string]any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return errs.Wrap(err, "failed to build gateway request")
	}
	req.SetBasicAuth(c.keyID, c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Mark(err, ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.Wrap(ErrGatewayRejected, "gateway returned "+resp.Status+": "+string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(err, "failed to decode gateway response")
	}
	return nil
}
