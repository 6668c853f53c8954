package types

type Currency string

const (
	CurrencyTZS Currency = "TZS"
	CurrencyKES Currency = "KES"
	CurrencyUGX Currency = "UGX"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyTZS, CurrencyKES, CurrencyUGX:
		return true
	default:
		return false
	}
}

type PaymentType string

const (
	PaymentTypeMobile PaymentType = "mobile"
	PaymentTypeCard   PaymentType = "card"
	PaymentTypeQR     PaymentType = "dynamic-qr"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
	PaymentStatusVoided    PaymentStatus = "voided"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusExpired, PaymentStatusVoided:
		return true
	default:
		return false
	}
}

type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusCompleted PayoutStatus = "completed"
	PayoutStatusFailed    PayoutStatus = "failed"
	PayoutStatusReversed  PayoutStatus = "reversed"
)

func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusCompleted, PayoutStatusFailed, PayoutStatusReversed:
		return true
	default:
		return false
	}
}

type PayoutChannel string

const (
	PayoutChannelMobile PayoutChannel = "mobile"
	PayoutChannelBank   PayoutChannel = "bank"
)

type PayoutProvider string

const (
	PayoutProviderAirtel   PayoutProvider = "airtel"
	PayoutProviderTigo     PayoutProvider = "tigo"
	PayoutProviderHaloPesa PayoutProvider = "halopesa"
	PayoutProviderBank     PayoutProvider = "bank"
)

type WebhookEvent string

const (
	WebhookEventPaymentCompleted WebhookEvent = "payment.completed"
	WebhookEventPaymentFailed    WebhookEvent = "payment.failed"
	WebhookEventPaymentExpired   WebhookEvent = "payment.expired"
	WebhookEventPaymentVoided    WebhookEvent = "payment.voided"
	WebhookEventPayoutCompleted  WebhookEvent = "payout.completed"
	WebhookEventPayoutFailed     WebhookEvent = "payout.failed"
)

func (e WebhookEvent) Valid() bool {
	switch e {
	case WebhookEventPaymentCompleted, WebhookEventPaymentFailed,
		WebhookEventPaymentExpired, WebhookEventPaymentVoided,
		WebhookEventPayoutCompleted, WebhookEventPayoutFailed:
		return true
	default:
		return false
	}
}

// BankCode identifies a Tanzanian bank supported for bank payouts.
type BankCode string

var bankCodes = map[BankCode]struct{}{
	"ABSA": {}, "ACCESS": {}, "AKIBA": {}, "AMANA": {}, "AZANIA": {},
	"BANCABC": {}, "BARODA": {}, "BOA": {}, "BOI": {}, "CANARA": {},
	"CITI": {}, "CRDB": {}, "DASHENG": {}, "DCB": {}, "DTB": {},
	"ECOBANK": {}, "EQUITY": {}, "EXIM": {}, "FNB": {}, "GT BANK": {},
	"HABIB": {}, "ICB": {}, "IMBANK": {}, "KCB": {}, "KILIMANJARO": {},
	"MAENDELEO": {}, "MKOMBOZI": {}, "MWALIMU": {}, "MWANGA": {},
	"NBC": {}, "NCBA": {}, "NMB": {}, "PBZ": {}, "SCB": {},
	"SELCOMPESA": {}, "STANBIC": {}, "TCB": {}, "UBA": {}, "UCHUMI": {},
	"YETU": {},
}

func (c BankCode) Valid() bool {
	_, ok := bankCodes[c]
	return ok
}
