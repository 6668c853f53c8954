// Package client implements the Snippe API resource clients: payments,
// payouts, and balance, behind a blocking facade (Client) and a
// concurrent one (AsyncClient). Both share the same validation and
// error-mapping code paths.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/snippe-sh/snippe-go/app/factory"
	"github.com/snippe-sh/snippe-go/app/transport"
)

const defaultMaxConcurrent = 8

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// Transport overrides the HTTP transport entirely; APIKey, BaseURL
	// and Timeout are ignored when set.
	Transport transport.Transport

	Logger logrus.FieldLogger

	// MaxConcurrent bounds in-flight calls made through the async facade.
	MaxConcurrent int
}

// Client is the blocking facade. It holds no cross-call mutable state, so
// a single instance is safe for concurrent use.
type Client struct {
	transport     transport.Transport
	logger        logrus.FieldLogger
	maxConcurrent int
}

func New(cfg Config) *Client {
	tr := cfg.Transport
	if tr == nil {
		tr = transport.NewHTTPTransport(transport.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = factory.NewModuleLogger("snippe-client")
	}

	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	return &Client{
		transport:     tr,
		logger:        logger,
		maxConcurrent: maxConcurrent,
	}
}

// NewIdempotencyKey returns a fresh key suitable for the IdempotencyKey
// field of creation requests.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, idempotencyKey string, out any) error {
	headers := http.Header{}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		headers.Set("Idempotency-Key", key)
	}

	c.logger.WithFields(logrus.Fields{"method": method, "path": path}).Debug("Sending request")

	resp, err := c.transport.Send(ctx, method, path, query, body, headers)
	if err != nil {
		return fmt.Errorf("snippe: transport: %w", err)
	}

	if err := classify(resp); err != nil {
		c.logger.WithError(err).WithField("path", path).Debug("Request failed")
		return err
	}

	if out == nil {
		return nil
	}
	return decodeInto(resp, out)
}
