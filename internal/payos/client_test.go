package payos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giftfall/api/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.GatewayConfig{
		BaseURL:     baseURL,
		ClientID:    "client-1",
		APIKey:      "key-1",
		ChecksumKey: "checksum-1",
		Timeout:     2 * time.Second,
	})
}

func TestCreatePaymentLinkSignsOrder(t *testing.T) {
	var received OrderDetails
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-client-id") != "client-1" || r.Header.Get("x-api-key") != "key-1" {
			t.Errorf("missing merchant headers: %v", r.Header)
		}
		if r.URL.Path != "/v2/payment-requests" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode order: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"code": "00",
			"desc": "success",
			"data": map[string]any{
				"paymentLinkId": "pl-1",
				"orderCode":     42,
				"amount":        150000,
				"status":        "PENDING",
				"checkoutUrl":   "https://pay.example/pl-1",
			},
		})
	}))
	defer server.Close()

	link, err := testClient(server.URL).CreatePaymentLink(context.Background(), OrderDetails{
		OrderCode:   42,
		Amount:      150000,
		Description: "premium package",
		CancelURL:   "https://giftfall.example/cancel",
		ReturnURL:   "https://giftfall.example/return",
	})
	if err != nil {
		t.Fatalf("CreatePaymentLink: %v", err)
	}
	if link.PaymentLinkID != "pl-1" || link.CheckoutURL != "https://pay.example/pl-1" {
		t.Fatalf("link = %+v", link)
	}

	want := map[string]string{
		"amount":      "150000",
		"cancelUrl":   "https://giftfall.example/cancel",
		"description": "premium package",
		"orderCode":   "42",
		"returnUrl":   "https://giftfall.example/return",
	}
	if !verifySignature("checksum-1", want, received.Signature) {
		t.Fatalf("signature %q does not verify against the order fields", received.Signature)
	}
}

func TestSuspendedChannelIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": "231",
			"desc": "kenh thanh toan khong ton tai hoac da bi tam ngung",
		})
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetPaymentLink(context.Background(), "pl-1")
	if !errors.Is(err, ErrGatewaySuspended) {
		t.Fatalf("err = %v, want ErrGatewaySuspended", err)
	}
}

func TestOtherGatewayCodesCarryCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": "09",
			"desc": "order not found",
		})
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetPaymentLink(context.Background(), "pl-404")
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("err = %v, want *GatewayError", err)
	}
	if gwErr.Code != "09" {
		t.Fatalf("code = %q, want 09", gwErr.Code)
	}
}

func TestCancelPaymentLinkPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/payment-requests/pl-1/cancel" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"code": "00",
			"desc": "success",
			"data": map[string]any{"paymentLinkId": "pl-1", "status": "CANCELLED"},
		})
	}))
	defer server.Close()

	link, err := testClient(server.URL).CancelPaymentLink(context.Background(), "pl-1")
	if err != nil {
		t.Fatalf("CancelPaymentLink: %v", err)
	}
	if link.Status != "CANCELLED" {
		t.Fatalf("status = %q", link.Status)
	}
}

func TestSignPayloadIsDeterministic(t *testing.T) {
	fields := map[string]string{"b": "2", "a": "1", "c": "3"}
	first := signPayload("key", fields)
	second := signPayload("key", map[string]string{"c": "3", "a": "1", "b": "2"})
	if first != second {
		t.Fatal("signature depends on map iteration order")
	}
	if !verifySignature("key", fields, first) {
		t.Fatal("signature does not verify")
	}
	if verifySignature("other-key", fields, first) {
		t.Fatal("signature verified with the wrong key")
	}
}
