package types

import (
	"encoding/json"
	"errors"
)

// Customer is the customer fragment attached to payment creation requests.
// Address fields are optional but recommended for card payments.
type Customer struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Money is an amount in the currency's smallest unit. Values pass through
// the SDK untouched; no arithmetic is performed on them.
type Money struct {
	Value    int64    `json:"value"`
	Currency Currency `json:"currency"`
}

// Payment is a payment snapshot as reported by the service. The SDK never
// mutates a payment locally; GetPayment fetches a fresh snapshot.
type Payment struct {
	Reference   string        `json:"reference"`
	Status      PaymentStatus `json:"status"`
	Amount      int64         `json:"-"`
	Currency    Currency      `json:"currency"`
	PaymentType PaymentType   `json:"payment_type"`

	ExpiresAt     string `json:"expires_at,omitempty"`
	PaymentURL    string `json:"payment_url,omitempty"`
	QRCode        string `json:"qr_code,omitempty"`
	PaymentQRCode string `json:"payment_qr_code,omitempty"`
	PaymentToken  string `json:"payment_token,omitempty"`

	ID           string            `json:"id,omitempty"`
	PSPReference string            `json:"psp_reference,omitempty"`
	FeeAmount    int64             `json:"fee_amount,omitempty"`
	NetAmount    int64             `json:"net_amount,omitempty"`
	Customer     map[string]any    `json:"customer,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    string            `json:"created_at,omitempty"`
}

// UnmarshalJSON tolerates both amount shapes the service emits: a bare
// integer alongside a top-level currency, or a nested {value, currency}
// object. The nested currency wins when present.
func (p *Payment) UnmarshalJSON(data []byte) error {
	type alias Payment
	aux := struct {
		Amount json.RawMessage `json:"amount"`
		*alias
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	value, currency, err := decodeAmount(aux.Amount)
	if err != nil {
		return err
	}
	p.Amount = value
	if currency != "" {
		p.Currency = currency
	}
	return nil
}

// MarshalJSON restores the flat integer amount shape.
func (p Payment) MarshalJSON() ([]byte, error) {
	type alias Payment
	return json.Marshal(struct {
		Amount int64 `json:"amount"`
		alias
	}{Amount: p.Amount, alias: (alias)(p)})
}

func decodeAmount(raw json.RawMessage) (int64, Currency, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, "", nil
	}
	if raw[0] == '{' {
		var nested Money
		if err := json.Unmarshal(raw, &nested); err != nil {
			return 0, "", err
		}
		return nested.Value, nested.Currency, nil
	}
	var value int64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, "", errors.New("amount must be an integer or an object")
	}
	return value, "", nil
}

// PaymentList is a single page of payments. The SDK never aggregates
// pages; callers drive pagination through limit and offset.
type PaymentList struct {
	Payments []Payment `json:"payments"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// Balance is a point-in-time account balance snapshot, never cached.
type Balance struct {
	AvailableBalance int64    `json:"available_balance"`
	Balance          int64    `json:"balance"`
	Currency         Currency `json:"currency"`
}

type PayoutRecipient struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone,omitempty"`
	Bank    BankCode `json:"bank,omitempty"`
	Account string   `json:"account,omitempty"`
}

type PayoutChannelInfo struct {
	Type     PayoutChannel  `json:"type"`
	Provider PayoutProvider `json:"provider"`
}

// Payout is a disbursement snapshot as reported by the service.
type Payout struct {
	Reference string            `json:"reference"`
	Status    PayoutStatus      `json:"status"`
	Amount    Money             `json:"amount"`
	Fees      Money             `json:"fees"`
	Total     Money             `json:"total"`
	Channel   PayoutChannelInfo `json:"channel"`
	Recipient PayoutRecipient   `json:"recipient"`

	Narration         string            `json:"narration,omitempty"`
	CreatedAt         string            `json:"created_at,omitempty"`
	CompletedAt       string            `json:"completed_at,omitempty"`
	ExternalReference string            `json:"external_reference,omitempty"`
	ID                string            `json:"id,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Source            string            `json:"source,omitempty"`
	FailureReason     string            `json:"failure_reason,omitempty"`
}

type PayoutList struct {
	Items  []Payout `json:"items"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// PayoutFee is a fee quote. It is a pure computation result and is
// requested fresh each time.
type PayoutFee struct {
	Amount      int64    `json:"amount"`
	FeeAmount   int64    `json:"fee_amount"`
	TotalAmount int64    `json:"total_amount"`
	Currency    Currency `json:"currency"`
}

// WebhookPayload is the event envelope delivered to webhook endpoints.
// Event and Reference are always present on verified payloads; the
// remaining fields depend on the event type.
type WebhookPayload struct {
	Event     WebhookEvent  `json:"event"`
	Reference string        `json:"reference"`
	Status    PaymentStatus `json:"status,omitempty"`
	Amount    *Money        `json:"amount,omitempty"`

	PaymentChannel string            `json:"payment_channel,omitempty"`
	PaymentFee     int64             `json:"payment_fee,omitempty"`
	Customer       map[string]any    `json:"customer,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CompletedAt    string            `json:"completed_at,omitempty"`
	CreatedAt      string            `json:"created_at,omitempty"`
	Timestamp      int64             `json:"timestamp,omitempty"`
}
