package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"evrental-backend/internal/domain"
)

type httpGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway builds a Gateway client against the provider's REST
// API. timeout bounds every call including connection setup.
func NewHTTPGateway(baseURL, apiKey string, timeout time.Duration) Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (g *httpGateway) CreateInvoice(ctx context.Context, inv Invoice) (*InvoiceResult, error) {
	body := map[string]any{
		"external_id": inv.ExternalID,
		"amount":      inv.AmountCents,
		"description": inv.Description,
		"payer_email": inv.PayerEmail,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/invoices", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.apiKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, domain.ExternalError("payment gateway unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, domain.ExternalError(fmt.Sprintf("create invoice failed: %s", resp.Status), nil)
	}

	var out struct {
		ID         string `json:"id"`
		InvoiceURL string `json:"invoice_url"`
		ExpiryDate string `json:"expiry_date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.ExternalError("decode invoice response", err)
	}
	if out.ID == "" {
		return nil, domain.ExternalError("gateway returned empty invoice id", nil)
	}

	return &InvoiceResult{InvoiceID: out.ID, InvoiceURL: out.InvoiceURL, ExpiresAt: out.ExpiryDate}, nil
}

func (g *httpGateway) VerifyPayment(ctx context.Context, invoiceID string, amountCents int32) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/invoices/"+invoiceID, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.apiKey, "")

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.ExternalError("payment gateway unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return domain.ExternalError(fmt.Sprintf("fetch invoice failed: %s", resp.Status), nil)
	}

	var out struct {
		Status      string `json:"status"`
		AmountCents int32  `json:"amount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.ExternalError("decode invoice response", err)
	}
	if out.Status != "PAID" && out.Status != "SETTLED" {
		return domain.ExternalError(fmt.Sprintf("invoice %s not settled: %s", invoiceID, out.Status), nil)
	}
	if out.AmountCents < amountCents {
		return domain.ExternalError(fmt.Sprintf("invoice %s settled %d, expected %d", invoiceID, out.AmountCents, amountCents), nil)
	}
	return nil
}
