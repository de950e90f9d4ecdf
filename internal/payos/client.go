// Package payos is a thin adapter over the PayOS merchant API. The core only
// needs the three payment-link operations; retry behavior stays with the
// gateway.
package payos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"giftfall/api/internal/config"
)

var (
	// ErrGatewaySuspended distinguishes "the payment channel does not exist
	// or has been suspended" from generic gateway failures, so the boundary
	// can answer 400 instead of 500.
	ErrGatewaySuspended = errors.New("payment gateway does not exist or has been suspended")
)

// GatewayError carries the raw PayOS response code and description.
type GatewayError struct {
	Code string
	Desc string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payos: code %s: %s", e.Code, e.Desc)
}

const (
	codeOK = "00"
	// PayOS answers this code when the merchant's payment channel is
	// missing or suspended.
	codeChannelSuspended = "231"
)

type Client struct {
	cfg  config.GatewayConfig
	http *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderDetails struct {
	OrderCode   int64       `json:"orderCode"`
	Amount      int64       `json:"amount"`
	Description string      `json:"description"`
	BuyerName   string      `json:"buyerName,omitempty"`
	BuyerEmail  string      `json:"buyerEmail,omitempty"`
	BuyerPhone  string      `json:"buyerPhone,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
	CancelURL   string      `json:"cancelUrl"`
	ReturnURL   string      `json:"returnUrl"`
	Signature   string      `json:"signature"`
}

// PaymentLink is the subset of the PayOS response surfaced to callers.
type PaymentLink struct {
	PaymentLinkID string `json:"paymentLinkId"`
	OrderCode     int64  `json:"orderCode"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	CheckoutURL   string `json:"checkoutUrl"`
	QRCode        string `json:"qrCode"`
}

type apiResponse struct {
	Code string          `json:"code"`
	Desc string          `json:"desc"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) CreatePaymentLink(ctx context.Context, order OrderDetails) (PaymentLink, error) {
	order.Signature = signPayload(c.cfg.ChecksumKey, map[string]string{
		"amount":      strconv.FormatInt(order.Amount, 10),
		"cancelUrl":   order.CancelURL,
		"description": order.Description,
		"orderCode":   strconv.FormatInt(order.OrderCode, 10),
		"returnUrl":   order.ReturnURL,
	})

	var link PaymentLink
	if err := c.do(ctx, http.MethodPost, "/v2/payment-requests", order, &link); err != nil {
		return PaymentLink{}, err
	}
	return link, nil
}

func (c *Client) GetPaymentLink(ctx context.Context, id string) (PaymentLink, error) {
	var link PaymentLink
	if err := c.do(ctx, http.MethodGet, "/v2/payment-requests/"+id, nil, &link); err != nil {
		return PaymentLink{}, err
	}
	return link, nil
}

func (c *Client) CancelPaymentLink(ctx context.Context, id string) (PaymentLink, error) {
	var link PaymentLink
	if err := c.do(ctx, http.MethodPost, "/v2/payment-requests/"+id+"/cancel", nil, &link); err != nil {
		return PaymentLink{}, err
	}
	return link, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, &reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.cfg.ClientID)
	req.Header.Set("x-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call gateway: %w", err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}

	if envelope.Code != codeOK {
		if envelope.Code == codeChannelSuspended {
			return fmt.Errorf("%w: %s", ErrGatewaySuspended, envelope.Desc)
		}
		return &GatewayError{Code: envelope.Code, Desc: envelope.Desc}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode gateway data: %w", err)
		}
	}
	return nil
}
