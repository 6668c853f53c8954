// Package webhook verifies inbound Snippe webhooks. Verification is a
// pure function of the raw body, the signature and timestamp headers,
// and the shared signing key; the clock is the only other input and is
// injectable for tests.
//
// Verification errors form their own hierarchy rooted at ErrVerification
// and are never mixed with API-call errors: a verification failure means
// "do not trust this payload", not "an operation failed".
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/snippe-sh/snippe-go/app/types"
)

const (
	SignatureHeader = "X-Webhook-Signature"
	TimestampHeader = "X-Webhook-Timestamp"

	DefaultTolerance = 300 * time.Second
)

var (
	ErrVerification = errors.New("webhook verification failed")

	ErrInvalidTimestamp          = fmt.Errorf("%w: invalid timestamp", ErrVerification)
	ErrTimestampOutsideTolerance = fmt.Errorf("%w: timestamp outside tolerance", ErrVerification)
	ErrSignatureMismatch         = fmt.Errorf("%w: signature mismatch", ErrVerification)
	ErrMalformedPayload          = fmt.Errorf("%w: malformed payload", ErrVerification)
)

type Config struct {
	SigningKey string

	// Tolerance bounds the replay window; timestamps further than this
	// from the verifier's clock are rejected. Defaults to 300 seconds.
	Tolerance time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Verifier checks webhook authenticity. It is stateless and safe for
// concurrent use.
type Verifier struct {
	signingKey string
	tolerance  time.Duration
	now        func() time.Time
}

func NewVerifier(cfg Config) *Verifier {
	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Verifier{
		signingKey: cfg.SigningKey,
		tolerance:  tolerance,
		now:        now,
	}
}

// ComputeSignature returns the hex-encoded HMAC-SHA256 of
// timestamp + "." + body keyed by signingKey. This is the scheme the
// service signs webhooks with; it is exported so tests and stub servers
// can produce valid signatures.
func ComputeSignature(body, timestamp, signingKey string) string {
	return hex.EncodeToString(computeMAC(body, timestamp, signingKey))
}

func computeMAC(body, timestamp, signingKey string) []byte {
	mac := hmac.New(sha256.New, []byte(signingKey))
	_, _ = mac.Write([]byte(timestamp + "." + body))
	return mac.Sum(nil)
}

// Verify authenticates a webhook and parses its event envelope. The body
// must be the exact raw bytes received; the signature covers them byte
// for byte.
func (v *Verifier) Verify(body, signature, timestamp string) (*types.WebhookPayload, error) {
	ts, err := strconv.ParseInt(strings.TrimSpace(timestamp), 10, 64)
	if err != nil {
		return nil, ErrInvalidTimestamp
	}

	now := v.now().Unix()
	tolerance := int64(v.tolerance / time.Second)
	if now-ts > tolerance || ts-now > tolerance {
		return nil, ErrTimestampOutsideTolerance
	}

	candidate, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return nil, ErrSignatureMismatch
	}
	expected := computeMAC(body, strings.TrimSpace(timestamp), v.signingKey)
	if !hmac.Equal(candidate, expected) {
		return nil, ErrSignatureMismatch
	}

	var payload types.WebhookPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, ErrMalformedPayload
	}
	if payload.Reference == "" || !payload.Event.Valid() {
		return nil, ErrMalformedPayload
	}
	return &payload, nil
}

// Verify is a one-shot convenience over NewVerifier with the default
// tolerance.
func Verify(body, signature, timestamp, signingKey string) (*types.WebhookPayload, error) {
	return NewVerifier(Config{SigningKey: signingKey}).Verify(body, signature, timestamp)
}
