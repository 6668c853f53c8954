package webhook

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/snippe-sh/snippe-go/app/types"
)

// FromEchoContext extracts the three verification inputs from an inbound
// Echo request: the exact raw body plus the signature and timestamp
// headers. The body must not have been consumed by earlier middleware.
func FromEchoContext(ctx echo.Context) (body, signature, timestamp string, err error) {
	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: unreadable body", ErrVerification)
	}
	return string(raw),
		ctx.Request().Header.Get(SignatureHeader),
		ctx.Request().Header.Get(TimestampHeader),
		nil
}

// VerifyEchoRequest binds and verifies an inbound Echo webhook request
// in one step.
func (v *Verifier) VerifyEchoRequest(ctx echo.Context) (*types.WebhookPayload, error) {
	body, signature, timestamp, err := FromEchoContext(ctx)
	if err != nil {
		return nil, err
	}
	return v.Verify(body, signature, timestamp)
}
