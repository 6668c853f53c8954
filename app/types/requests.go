package types

import (
	"fmt"
	"strings"
)

// FieldError reports a structural problem with a request field, detected
// before any network call is made.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func requiredField(field string) error {
	return &FieldError{Field: field, Reason: "is required"}
}

type CreateMobilePaymentRequest struct {
	Amount      int64
	Currency    Currency
	PhoneNumber string
	Customer    Customer

	CallbackURL    string
	WebhookURL     string
	Metadata       map[string]string
	IdempotencyKey string
}

func (r *CreateMobilePaymentRequest) Validate() error {
	if err := validatePaymentCore(r.Amount, r.Currency, r.PhoneNumber, &r.Customer); err != nil {
		return err
	}
	return nil
}

type CreateCardPaymentRequest struct {
	Amount      int64
	Currency    Currency
	PhoneNumber string
	Customer    Customer

	// CallbackURL is where the customer is redirected after the hosted
	// card flow; unlike the other payment methods it is required.
	CallbackURL string

	WebhookURL     string
	Metadata       map[string]string
	IdempotencyKey string
}

func (r *CreateCardPaymentRequest) Validate() error {
	if err := validatePaymentCore(r.Amount, r.Currency, r.PhoneNumber, &r.Customer); err != nil {
		return err
	}
	if strings.TrimSpace(r.CallbackURL) == "" {
		return requiredField("callback_url")
	}
	return nil
}

type CreateQRPaymentRequest struct {
	Amount      int64
	Currency    Currency
	PhoneNumber string
	Customer    Customer

	CallbackURL    string
	WebhookURL     string
	Metadata       map[string]string
	IdempotencyKey string
}

func (r *CreateQRPaymentRequest) Validate() error {
	return validatePaymentCore(r.Amount, r.Currency, r.PhoneNumber, &r.Customer)
}

func validatePaymentCore(amount int64, currency Currency, phoneNumber string, customer *Customer) error {
	if amount <= 0 {
		return &FieldError{Field: "amount", Reason: "must be > 0"}
	}
	if !currency.Valid() {
		return &FieldError{Field: "currency", Reason: "must be one of TZS, KES, UGX"}
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return requiredField("phone_number")
	}
	if strings.TrimSpace(customer.Firstname) == "" {
		return requiredField("customer.firstname")
	}
	if strings.TrimSpace(customer.Lastname) == "" {
		return requiredField("customer.lastname")
	}
	return nil
}

type CreateMobilePayoutRequest struct {
	Amount         int64
	RecipientName  string
	RecipientPhone string

	Narration      string
	WebhookURL     string
	Metadata       map[string]string
	IdempotencyKey string
}

func (r *CreateMobilePayoutRequest) Validate() error {
	if r.Amount <= 0 {
		return &FieldError{Field: "amount", Reason: "must be > 0"}
	}
	if strings.TrimSpace(r.RecipientName) == "" {
		return requiredField("recipient_name")
	}
	if strings.TrimSpace(r.RecipientPhone) == "" {
		return requiredField("recipient_phone")
	}
	return nil
}

type CreateBankPayoutRequest struct {
	Amount           int64
	RecipientName    string
	RecipientBank    BankCode
	RecipientAccount string

	Narration      string
	WebhookURL     string
	Metadata       map[string]string
	IdempotencyKey string
}

func (r *CreateBankPayoutRequest) Validate() error {
	if r.Amount <= 0 {
		return &FieldError{Field: "amount", Reason: "must be > 0"}
	}
	if strings.TrimSpace(r.RecipientName) == "" {
		return requiredField("recipient_name")
	}
	if !r.RecipientBank.Valid() {
		return &FieldError{Field: "recipient_bank", Reason: "is not a supported bank code"}
	}
	if strings.TrimSpace(r.RecipientAccount) == "" {
		return requiredField("recipient_account")
	}
	return nil
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListOptions selects one page of a list endpoint. A zero Limit defaults
// to 20; the service caps pages at 100 entries.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o *ListOptions) Validate() error {
	if o.Limit == 0 {
		o.Limit = defaultListLimit
	}
	if o.Limit < 0 || o.Limit > maxListLimit {
		return &FieldError{Field: "limit", Reason: fmt.Sprintf("must be between 1 and %d", maxListLimit)}
	}
	if o.Offset < 0 {
		return &FieldError{Field: "offset", Reason: "must be >= 0"}
	}
	return nil
}
