package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/snippe-sh/snippe-go/app/transport"
	"github.com/snippe-sh/snippe-go/app/types"
)

// Sentinel error kinds. Every failed API call unwraps to exactly one of
// these, so callers can switch on errors.Is without inspecting status
// codes themselves.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnprocessable  = errors.New("unprocessable entity")
	ErrValidation     = errors.New("validation failed")
	ErrRateLimit      = errors.New("rate limited")
	ErrServer         = errors.New("server error")
	ErrUnknown        = errors.New("unknown error")
)

// APIError is a failed API call, classified into one of the sentinel
// kinds above. StatusCode is 0 for local validation failures that were
// rejected before any network call.
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
	ErrorCode  string
	Field      string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("snippe: %v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("snippe: %v: %s (status %d)", e.Kind, e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// Retryable reports whether repeating the call is known to be safe when
// an idempotency key was supplied.
func (e *APIError) Retryable() bool {
	return errors.Is(e.Kind, ErrServer)
}

type errorBody struct {
	Message    string `json:"message"`
	ErrorCode  string `json:"error_code"`
	RetryAfter int64  `json:"retry_after"`
}

// classify maps a transport outcome to a typed error. A nil return means
// the response is a success and its body may be decoded.
func classify(resp *transport.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var parsed errorBody
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		parsed = errorBody{Message: strings.TrimSpace(string(resp.Body))}
	}
	if parsed.Message == "" {
		parsed.Message = "unknown error"
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    parsed.Message,
		ErrorCode:  parsed.ErrorCode,
	}

	switch {
	case resp.StatusCode == 401:
		apiErr.Kind = ErrAuthentication
	case resp.StatusCode == 403:
		apiErr.Kind = ErrForbidden
	case resp.StatusCode == 404:
		apiErr.Kind = ErrNotFound
	case resp.StatusCode == 409:
		apiErr.Kind = ErrConflict
	case resp.StatusCode == 422:
		apiErr.Kind = ErrUnprocessable
	case resp.StatusCode == 400:
		apiErr.Kind = ErrValidation
	case resp.StatusCode == 429:
		apiErr.Kind = ErrRateLimit
		apiErr.RetryAfter = retryAfterHint(resp, parsed)
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		apiErr.Kind = ErrServer
	default:
		apiErr.Kind = ErrUnknown
	}

	return apiErr
}

func retryAfterHint(resp *transport.Response, parsed errorBody) time.Duration {
	if resp.Header != nil {
		if raw := strings.TrimSpace(resp.Header.Get("Retry-After")); raw != "" {
			if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil && seconds > 0 {
				return time.Duration(seconds) * time.Second
			}
		}
	}
	if parsed.RetryAfter > 0 {
		return time.Duration(parsed.RetryAfter) * time.Second
	}
	return 0
}

// validationError wraps a request Validate failure into the taxonomy
// without a network round-trip.
func validationError(err error) *APIError {
	apiErr := &APIError{
		Kind:    ErrValidation,
		Message: err.Error(),
	}
	var fieldErr *types.FieldError
	if errors.As(err, &fieldErr) {
		apiErr.Field = fieldErr.Field
	}
	return apiErr
}

func malformedResponse(statusCode int, detail string) *APIError {
	return &APIError{
		Kind:       ErrUnknown,
		StatusCode: statusCode,
		Message:    "malformed response body: " + detail,
	}
}

// decodeInto unwraps the optional {"data": ...} success envelope and
// decodes the payload into out.
func decodeInto(resp *transport.Response, out any) error {
	payload := resp.Body

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err == nil {
		if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
			payload = envelope.Data
		}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return malformedResponse(resp.StatusCode, err.Error())
	}
	return nil
}
