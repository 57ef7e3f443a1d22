// Package payment calls the external payment collaborator over HTTP.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"hawkerflow/internal/core/ports"

	"github.com/shopspring/decimal"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// ErrUnexpectedResponse is returned for non-2xx answers and bodies without a known status.
var ErrUnexpectedResponse = errors.New("unexpected payment response")

var _ ports.PaymentGateway = (*Client)(nil)

type chargeRequest struct {
	OrderID string          `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
	Token   string          `json:"token"`
}

// chargeResponse accepts both {"status": ...} and {"code": 200, "data": {"status": ...}}.
type chargeResponse struct {
	Status string `json:"status"`
	Data   struct {
		Status string `json:"status"`
	} `json:"data"`
}

func (r chargeResponse) status() string {
	if r.Status != "" {
		return r.Status
	}
	return r.Data.Status
}

// Client has no timeout of its own; the caller bounds every charge with its context.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

func NewClient(url string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		url:    url,
		http:   httpClient,
		logger: logger.With("component", "payment_client"),
	}
}

func (c *Client) Charge(ctx context.Context, req ports.ChargeRequest) (bool, error) {
	body, err := json.Marshal(chargeRequest{
		OrderID: req.OrderID.String(),
		Amount:  req.Amount.Decimal(),
		Token:   req.Token,
	})
	if err != nil {
		return false, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return false, err
	}

	var decoded chargeResponse
	if len(raw) > 0 {
		// A declined payment may come back as 4xx with a JSON status.
		_ = json.Unmarshal(raw, &decoded)
	}

	switch status := decoded.status(); {
	case status == statusSuccess && resp.StatusCode < http.StatusMultipleChoices:
		return true, nil
	case status == statusFailed:
		c.logger.InfoContext(ctx, "payment declined by collaborator",
			"order_id", req.OrderID.String(), "http_status", resp.StatusCode)
		return false, nil
	default:
		return false, fmt.Errorf("%w: http %d, status %q", ErrUnexpectedResponse, resp.StatusCode, status)
	}
}
