//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/snippe-sh/snippe-go/app/client"
	"github.com/snippe-sh/snippe-go/app/types"
	"github.com/snippe-sh/snippe-go/app/webhook"
)

func newE2EClient(t *testing.T) *client.Client {
	t.Helper()
	mock := newSnippeMock()
	server := mock.server()
	t.Cleanup(server.Close)
	return client.New(client.Config{
		APIKey:  snippeTestAPIKey,
		BaseURL: server.URL,
	})
}

func TestPaymentLifecycle(t *testing.T) {
	c := newE2EClient(t)
	ctx := context.Background()

	created, err := c.CreateMobilePayment(ctx, &types.CreateMobilePaymentRequest{
		Amount:      15000,
		Currency:    types.CurrencyTZS,
		PhoneNumber: "0788500000",
		Customer:    types.Customer{Firstname: "John", Lastname: "Doe"},
	})
	if err != nil {
		t.Fatalf("create payment failed: %v", err)
	}
	if created.Status != types.PaymentStatusPending {
		t.Fatalf("expected pending, got %q", created.Status)
	}

	fetched, err := c.GetPayment(ctx, created.Reference)
	if err != nil {
		t.Fatalf("get payment failed: %v", err)
	}
	if fetched.Reference != created.Reference || fetched.Amount != 15000 {
		t.Fatalf("fetched payment differs: %+v", fetched)
	}

	list, err := c.ListPayments(ctx, types.ListOptions{Limit: 10})
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if list.Total != 1 || len(list.Payments) != 1 {
		t.Fatalf("unexpected page: %+v", list)
	}
}

func TestPaymentIdempotency(t *testing.T) {
	c := newE2EClient(t)
	ctx := context.Background()

	req := &types.CreateMobilePaymentRequest{
		Amount:         15000,
		Currency:       types.CurrencyTZS,
		PhoneNumber:    "0788500000",
		Customer:       types.Customer{Firstname: "John", Lastname: "Doe"},
		IdempotencyKey: client.NewIdempotencyKey(),
	}

	first, err := c.CreateMobilePayment(ctx, req)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := c.CreateMobilePayment(ctx, req)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first.Reference != second.Reference {
		t.Fatalf("idempotent retry produced new payment: %q vs %q", first.Reference, second.Reference)
	}
}

func TestCardAndQRPayments(t *testing.T) {
	c := newE2EClient(t)
	ctx := context.Background()

	card, err := c.CreateCardPayment(ctx, &types.CreateCardPaymentRequest{
		Amount:      50000,
		Currency:    types.CurrencyTZS,
		PhoneNumber: "0788500000",
		Customer:    types.Customer{Firstname: "John", Lastname: "Doe"},
		CallbackURL: "https://myapp.example/return",
	})
	if err != nil {
		t.Fatalf("create card payment failed: %v", err)
	}
	if card.PaymentURL == "" {
		t.Fatal("expected hosted payment url")
	}

	qr, err := c.CreateQRPayment(ctx, &types.CreateQRPaymentRequest{
		Amount:      25000,
		Currency:    types.CurrencyTZS,
		PhoneNumber: "0788500000",
		Customer:    types.Customer{Firstname: "John", Lastname: "Doe"},
	})
	if err != nil {
		t.Fatalf("create qr payment failed: %v", err)
	}
	if qr.PaymentToken == "" || qr.PaymentQRCode == "" {
		t.Fatal("expected payment token and qr code")
	}
}

func TestPayoutFlowAgainstBalance(t *testing.T) {
	c := newE2EClient(t)
	ctx := context.Background()

	before, err := c.GetBalance(ctx)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}

	quote, err := c.CalculatePayoutFee(ctx, 100000)
	if err != nil {
		t.Fatalf("fee quote failed: %v", err)
	}
	if quote.TotalAmount != quote.Amount+quote.FeeAmount {
		t.Fatalf("inconsistent quote: %+v", quote)
	}

	payout, err := c.CreateMobilePayout(ctx, &types.CreateMobilePayoutRequest{
		Amount:         100000,
		RecipientName:  "Jane Doe",
		RecipientPhone: "0788123456",
		Narration:      "supplier settlement",
	})
	if err != nil {
		t.Fatalf("create payout failed: %v", err)
	}
	if payout.Total.Value != quote.TotalAmount {
		t.Fatalf("payout total %d does not match quote %d", payout.Total.Value, quote.TotalAmount)
	}

	after, err := c.GetBalance(ctx)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if after.AvailableBalance != before.AvailableBalance-quote.TotalAmount {
		t.Fatalf("balance not debited: before=%d after=%d", before.AvailableBalance, after.AvailableBalance)
	}

	fetched, err := c.GetPayout(ctx, payout.Reference)
	if err != nil {
		t.Fatalf("get payout failed: %v", err)
	}
	if fetched.Recipient.Phone != "0788123456" {
		t.Fatalf("unexpected recipient: %+v", fetched.Recipient)
	}

	list, err := c.ListPayouts(ctx, types.ListOptions{})
	if err != nil {
		t.Fatalf("list payouts failed: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("unexpected payout total: %+v", list)
	}
}

func TestInsufficientBalanceIsUnprocessable(t *testing.T) {
	c := newE2EClient(t)

	_, err := c.CreateMobilePayout(context.Background(), &types.CreateMobilePayoutRequest{
		Amount:         5_000_000,
		RecipientName:  "Jane Doe",
		RecipientPhone: "0788123456",
	})
	if !errors.Is(err, client.ErrUnprocessable) {
		t.Fatalf("expected unprocessable, got %v", err)
	}
}

func TestErrorMapping(t *testing.T) {
	c := newE2EClient(t)
	ctx := context.Background()

	if _, err := c.GetPayment(ctx, "PMT-9999"); !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock := newSnippeMock()
	server := mock.server()
	t.Cleanup(server.Close)
	wrongKey := client.New(client.Config{APIKey: "sk_wrong", BaseURL: server.URL})
	if _, err := wrongKey.GetBalance(ctx); !errors.Is(err, client.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestAsyncFacadeEndToEnd(t *testing.T) {
	c := newE2EClient(t)
	ctx := context.Background()
	async := c.Async()

	futures := make([]*client.Future[*types.Payment], 5)
	for i := range futures {
		futures[i] = async.CreateMobilePayment(ctx, &types.CreateMobilePaymentRequest{
			Amount:      int64(1000 * (i + 1)),
			Currency:    types.CurrencyTZS,
			PhoneNumber: "0788500000",
			Customer:    types.Customer{Firstname: "John", Lastname: "Doe"},
		})
	}

	seen := map[string]bool{}
	for i, f := range futures {
		payment, err := f.Wait(ctx)
		if err != nil {
			t.Fatalf("future %d failed: %v", i, err)
		}
		if seen[payment.Reference] {
			t.Fatalf("duplicate reference %q", payment.Reference)
		}
		seen[payment.Reference] = true
	}
}

func TestWebhookDeliveryVerifies(t *testing.T) {
	body := webhookBody("payment.completed", "PMT-0001", 15000)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	signature := webhook.ComputeSignature(body, ts, snippeTestSigningKey)

	payload, err := webhook.Verify(body, signature, ts, snippeTestSigningKey)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if payload.Event != types.WebhookEventPaymentCompleted || payload.Reference != "PMT-0001" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Amount == nil || payload.Amount.Value != 15000 {
		t.Fatalf("unexpected amount: %+v", payload.Amount)
	}

	if _, err := webhook.Verify(body, signature, ts, "whsec_other"); !errors.Is(err, webhook.ErrSignatureMismatch) {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
}
