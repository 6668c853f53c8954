package client

import (
	"context"
	"net/http"

	"github.com/snippe-sh/snippe-go/app/types"
)

// GetBalance returns the current account balance. The snapshot is never
// cached; every call hits the service.
func (c *Client) GetBalance(ctx context.Context) (*types.Balance, error) {
	var balance types.Balance
	if err := c.do(ctx, http.MethodGet, "/payments/balance", nil, nil, "", &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}
