// Package daraja implements the M-Pesa (Daraja) gateway client: token
// exchange, STK push initiation and out-of-band status queries.
package daraja

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dukastore/internal/application"
	"dukastore/internal/config"
	"dukastore/internal/domain"
)

type Client struct {
	cfg        config.MpesaConfig
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg config.MpesaConfig) application.PaymentGateway {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
		now: time.Now,
	}
}

// Token exchanges the consumer key/secret for a bearer token. The gateway
// does not report an expiry, so callers use the token immediately and fetch a
// fresh one per initiation.
func (c *Client) Token(ctx context.Context) (string, error) {
	reqURL := c.cfg.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", domain.NewUnavailableError(err)
	}
	httpReq.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	body, status, err := c.do(httpReq)
	if err != nil {
		return "", err
	}

	var tokenResp tokenResponse
	if err := decodeStrict(body, &tokenResp); err != nil {
		return "", err
	}

	if tokenResp.AccessToken == "" {
		return "", domain.NewAuthFailedError(&GatewayError{StatusCode: status, Payload: body})
	}

	return tokenResp.AccessToken, nil
}

// STKPush submits the push-payment descriptor under the given bearer token.
func (c *Client) STKPush(ctx context.Context, accessToken string, req domain.PaymentRequest) (*application.InitiationResult, error) {
	timestamp := c.now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString(
		[]byte(c.cfg.ShortCode + c.cfg.PassKey + timestamp),
	)

	stkReq := stkPushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            req.AmountKES,
		PartyA:            req.Phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       req.Phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  "Order" + req.OrderRef,
		TransactionDesc:   "Checkout payment",
	}

	jsonData, err := json.Marshal(stkReq)
	if err != nil {
		return nil, fmt.Errorf("error marshalling json: %w", err)
	}

	reqURL := c.cfg.BaseURL + "/mpesa/stkpush/v1/processrequest"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, domain.NewUnavailableError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	body, status, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var stkResp stkPushResponse
	if err := decodeStrict(body, &stkResp); err != nil {
		return nil, err
	}

	if stkResp.CheckoutRequestID == "" {
		return nil, domain.NewInitiationFailedError(&GatewayError{StatusCode: status, Payload: body})
	}

	return &application.InitiationResult{
		CheckoutRequestID: stkResp.CheckoutRequestID,
		MerchantRequestID: stkResp.MerchantRequestID,
		CustomerMessage:   stkResp.CustomerMessage,
	}, nil
}

// QueryStatus asks the status source about one checkout request. Unknown or
// empty statuses coerce to pending; the source is authoritative.
func (c *Client) QueryStatus(ctx context.Context, checkoutRequestID string) (domain.PaymentStatus, error) {
	reqURL := c.cfg.StatusURL + "?checkoutRequestId=" + url.QueryEscape(checkoutRequestID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.StatusPending, domain.NewUnavailableError(err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.StatusPending, domain.NewUnavailableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.StatusPending, domain.NewUnavailableError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.StatusPending, domain.NewUnavailableError(&GatewayError{StatusCode: resp.StatusCode, Payload: body})
	}

	var statusResp statusResponse
	if err := decodeStrict(body, &statusResp); err != nil {
		return domain.StatusPending, err
	}

	return domain.ParsePaymentStatus(statusResp.Status), nil
}

// do runs the request and returns the full body. Non-2xx responses become
// UPSTREAM_UNAVAILABLE with the payload attached for diagnostics.
func (c *Client) do(httpReq *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, domain.NewUnavailableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, domain.NewUnavailableError(err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, resp.StatusCode, domain.NewUnavailableError(&GatewayError{StatusCode: resp.StatusCode, Payload: body})
	}

	// 4xx bodies still carry the gateway's error payload; let the caller
	// decode and classify them.
	return body, resp.StatusCode, nil
}

// decodeStrict rejects non-JSON bodies explicitly instead of treating them as
// an empty success.
func decodeStrict(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		preview := body
		if len(preview) > 256 {
			preview = preview[:256]
		}
		return domain.NewProtocolError(fmt.Errorf("expected JSON, got %q: %w", preview, err))
	}
	return nil
}
