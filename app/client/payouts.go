package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/snippe-sh/snippe-go/app/types"
)

// CreateMobilePayout sends money to a mobile money account. Funds are
// deducted from the available balance immediately.
func (c *Client) CreateMobilePayout(ctx context.Context, req *types.CreateMobilePayoutRequest) (*types.Payout, error) {
	if req == nil {
		return nil, validationError(&types.FieldError{Field: "request", Reason: "is required"})
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	payload := map[string]any{
		"amount":          req.Amount,
		"channel":         types.PayoutChannelMobile,
		"recipient_name":  strings.TrimSpace(req.RecipientName),
		"recipient_phone": strings.TrimSpace(req.RecipientPhone),
	}
	addPayoutOptionals(payload, req.Narration, req.WebhookURL, req.Metadata)

	return c.createPayout(ctx, payload, req.IdempotencyKey)
}

// CreateBankPayout sends money to a bank account.
func (c *Client) CreateBankPayout(ctx context.Context, req *types.CreateBankPayoutRequest) (*types.Payout, error) {
	if req == nil {
		return nil, validationError(&types.FieldError{Field: "request", Reason: "is required"})
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	payload := map[string]any{
		"amount":            req.Amount,
		"channel":           types.PayoutChannelBank,
		"recipient_name":    strings.TrimSpace(req.RecipientName),
		"recipient_bank":    req.RecipientBank,
		"recipient_account": strings.TrimSpace(req.RecipientAccount),
	}
	addPayoutOptionals(payload, req.Narration, req.WebhookURL, req.Metadata)

	return c.createPayout(ctx, payload, req.IdempotencyKey)
}

// GetPayout fetches a fresh payout snapshot by reference.
func (c *Client) GetPayout(ctx context.Context, reference string) (*types.Payout, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, validationError(&types.FieldError{Field: "reference", Reason: "is required"})
	}

	var payout types.Payout
	if err := c.do(ctx, http.MethodGet, "/payouts/"+url.PathEscape(reference), nil, nil, "", &payout); err != nil {
		return nil, err
	}
	if payout.Reference == "" {
		return nil, malformedResponse(http.StatusOK, "payout reference missing")
	}
	return &payout, nil
}

// ListPayouts returns one page of payouts plus the total count.
func (c *Client) ListPayouts(ctx context.Context, opts types.ListOptions) (*types.PayoutList, error) {
	if err := opts.Validate(); err != nil {
		return nil, validationError(err)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(opts.Limit))
	query.Set("offset", strconv.Itoa(opts.Offset))

	var list types.PayoutList
	if err := c.do(ctx, http.MethodGet, "/payouts", query, nil, "", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CalculatePayoutFee quotes the fee for a payout amount. The quote is a
// pure query with no side effects, so no idempotency key is involved.
func (c *Client) CalculatePayoutFee(ctx context.Context, amount int64) (*types.PayoutFee, error) {
	if amount <= 0 {
		return nil, validationError(&types.FieldError{Field: "amount", Reason: "must be > 0"})
	}

	query := url.Values{}
	query.Set("amount", strconv.FormatInt(amount, 10))

	var fee types.PayoutFee
	if err := c.do(ctx, http.MethodGet, "/payouts/fee", query, nil, "", &fee); err != nil {
		return nil, err
	}
	return &fee, nil
}

func (c *Client) createPayout(ctx context.Context, payload map[string]any, idempotencyKey string) (*types.Payout, error) {
	var payout types.Payout
	if err := c.do(ctx, http.MethodPost, "/payouts/send", nil, payload, idempotencyKey, &payout); err != nil {
		return nil, err
	}
	if payout.Reference == "" {
		return nil, malformedResponse(http.StatusCreated, "payout reference missing")
	}
	return &payout, nil
}

func addPayoutOptionals(payload map[string]any, narration, webhookURL string, metadata map[string]string) {
	if narration = strings.TrimSpace(narration); narration != "" {
		payload["narration"] = narration
	}
	if webhookURL = strings.TrimSpace(webhookURL); webhookURL != "" {
		payload["webhook_url"] = webhookURL
	}
	if len(metadata) > 0 {
		payload["metadata"] = metadata
	}
}
