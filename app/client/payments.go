package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/snippe-sh/snippe-go/app/types"
)

// CreateMobilePayment starts a mobile money payment; the customer
// receives a USSD push prompt to confirm it.
func (c *Client) CreateMobilePayment(ctx context.Context, req *types.CreateMobilePaymentRequest) (*types.Payment, error) {
	if req == nil {
		return nil, validationError(&types.FieldError{Field: "request", Reason: "is required"})
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	payload := paymentPayload(types.PaymentTypeMobile, req.Amount, req.Currency, req.PhoneNumber, req.Customer, req.CallbackURL, req.WebhookURL, req.Metadata)
	return c.createPayment(ctx, payload, req.IdempotencyKey)
}

// CreateCardPayment starts a card payment. The returned payment carries a
// payment_url to redirect the customer to.
func (c *Client) CreateCardPayment(ctx context.Context, req *types.CreateCardPaymentRequest) (*types.Payment, error) {
	if req == nil {
		return nil, validationError(&types.FieldError{Field: "request", Reason: "is required"})
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	payload := paymentPayload(types.PaymentTypeCard, req.Amount, req.Currency, req.PhoneNumber, req.Customer, req.CallbackURL, req.WebhookURL, req.Metadata)
	return c.createPayment(ctx, payload, req.IdempotencyKey)
}

// CreateQRPayment starts a dynamic QR payment. The returned payment
// carries payment_qr_code and payment_token for display.
func (c *Client) CreateQRPayment(ctx context.Context, req *types.CreateQRPaymentRequest) (*types.Payment, error) {
	if req == nil {
		return nil, validationError(&types.FieldError{Field: "request", Reason: "is required"})
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	payload := paymentPayload(types.PaymentTypeQR, req.Amount, req.Currency, req.PhoneNumber, req.Customer, req.CallbackURL, req.WebhookURL, req.Metadata)
	return c.createPayment(ctx, payload, req.IdempotencyKey)
}

// GetPayment fetches a fresh payment snapshot by reference.
func (c *Client) GetPayment(ctx context.Context, reference string) (*types.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, validationError(&types.FieldError{Field: "reference", Reason: "is required"})
	}

	var payment types.Payment
	if err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(reference), nil, nil, "", &payment); err != nil {
		return nil, err
	}
	if payment.Reference == "" {
		return nil, malformedResponse(http.StatusOK, "payment reference missing")
	}
	return &payment, nil
}

// ListPayments returns one page of payments plus the total count. Each
// call returns exactly one page; pagination stays with the caller.
func (c *Client) ListPayments(ctx context.Context, opts types.ListOptions) (*types.PaymentList, error) {
	if err := opts.Validate(); err != nil {
		return nil, validationError(err)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(opts.Limit))
	query.Set("offset", strconv.Itoa(opts.Offset))

	var list types.PaymentList
	if err := c.do(ctx, http.MethodGet, "/payments", query, nil, "", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) createPayment(ctx context.Context, payload map[string]any, idempotencyKey string) (*types.Payment, error) {
	var payment types.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", nil, payload, idempotencyKey, &payment); err != nil {
		return nil, err
	}
	if payment.Reference == "" {
		return nil, malformedResponse(http.StatusCreated, "payment reference missing")
	}
	return &payment, nil
}

func paymentPayload(paymentType types.PaymentType, amount int64, currency types.Currency, phoneNumber string, customer types.Customer, callbackURL, webhookURL string, metadata map[string]string) map[string]any {
	details := map[string]any{
		"amount":   amount,
		"currency": currency,
	}
	if callbackURL = strings.TrimSpace(callbackURL); callbackURL != "" {
		details["callback_url"] = callbackURL
	}

	payload := map[string]any{
		"payment_type": paymentType,
		"details":      details,
		"phone_number": strings.TrimSpace(phoneNumber),
		"customer":     customer,
	}
	if webhookURL = strings.TrimSpace(webhookURL); webhookURL != "" {
		payload["webhook_url"] = webhookURL
	}
	if len(metadata) > 0 {
		payload["metadata"] = metadata
	}
	return payload
}
