// Package woo implements the WooCommerce REST client for catalog reads and
// order creation.
package woo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dukastore/internal/application"
	"dukastore/internal/config"
	"dukastore/internal/domain"
)

type Client struct {
	baseURL    string
	key        string
	secret     string
	httpClient *http.Client
}

func NewClient(cfg config.WooConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.ConsumerKey,
		secret:  cfg.ConsumerSecret,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]application.Product, error) {
	url := fmt.Sprintf("%s/wp-json/wc/v3/products?per_page=20", c.baseURL)
	products, err := sendRequest[any, []application.Product](c, ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return *products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*application.Product, error) {
	url := fmt.Sprintf("%s/wp-json/wc/v3/products/%d", c.baseURL, id)
	return sendRequest[any, application.Product](c, ctx, http.MethodGet, url, nil)
}

// CreateOrder submits a single pre-paid order. No retry here; at-most-once
// semantics are the committer's concern.
func (c *Client) CreateOrder(ctx context.Context, draft application.OrderDraft) (*application.CreatedOrder, error) {
	body := orderRequest{
		PaymentMethod:      "mpesa",
		PaymentMethodTitle: "M-Pesa STK Push",
		SetPaid:            true,
		Billing: orderBilling{
			FirstName: draft.Billing.Name,
			Email:     draft.Billing.Email,
			Phone:     draft.Billing.Phone,
			Address1:  draft.Billing.Address,
		},
	}
	for _, line := range draft.Lines {
		body.LineItems = append(body.LineItems, orderLineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	url := fmt.Sprintf("%s/wp-json/wc/v3/orders", c.baseURL)
	order, err := sendRequest[orderRequest, orderResponse](c, ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}

	return &application.CreatedOrder{ID: order.ID, Status: order.Status}, nil
}

func sendRequest[Req any, Resp any](c *Client, ctx context.Context, method, url string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, domain.NewUnavailableError(err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.SetBasicAuth(c.key, c.secret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewUnavailableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewUnavailableError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Wrapped so the REST boundary reports 502; the CommerceError stays
		// reachable for the retry predicate.
		return nil, domain.NewUnavailableError(&CommerceError{StatusCode: resp.StatusCode, Payload: body})
	}

	var wooResp Resp
	if err := json.Unmarshal(body, &wooResp); err != nil {
		preview := body
		if len(preview) > 256 {
			preview = preview[:256]
		}
		return nil, domain.NewProtocolError(fmt.Errorf("expected JSON, got %q: %w", preview, err))
	}

	return &wooResp, nil
}
