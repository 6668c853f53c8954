package client

import (
	"context"

	"github.com/snippe-sh/snippe-go/app/types"
)

// AsyncClient is the concurrent facade. Every operation dispatches the
// corresponding Client method on a goroutine and returns a Future. A
// semaphore bounds in-flight calls: a slot is acquired before the
// transport is touched and released on every exit path, so cancellation
// never leaks a slot.
type AsyncClient struct {
	client *Client
	sem    chan struct{}
}

// Async returns a concurrent facade sharing this client's transport,
// validation, and error mapping.
func (c *Client) Async() *AsyncClient {
	return &AsyncClient{
		client: c,
		sem:    make(chan struct{}, c.maxConcurrent),
	}
}

func NewAsync(cfg Config) *AsyncClient {
	return New(cfg).Async()
}

// Future is a pending result. Wait blocks until the operation resolves
// or ctx is done; abandoning a Future is safe, the goroutine behind it
// still releases its semaphore slot.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func dispatch[T any](a *AsyncClient, ctx context.Context, op func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)

		select {
		case a.sem <- struct{}{}:
			defer func() { <-a.sem }()
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		}

		f.value, f.err = op(ctx)
	}()
	return f
}

func (a *AsyncClient) CreateMobilePayment(ctx context.Context, req *types.CreateMobilePaymentRequest) *Future[*types.Payment] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.Payment, error) {
		return a.client.CreateMobilePayment(ctx, req)
	})
}

func (a *AsyncClient) CreateCardPayment(ctx context.Context, req *types.CreateCardPaymentRequest) *Future[*types.Payment] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.Payment, error) {
		return a.client.CreateCardPayment(ctx, req)
	})
}

func (a *AsyncClient) CreateQRPayment(ctx context.Context, req *types.CreateQRPaymentRequest) *Future[*types.Payment] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.Payment, error) {
		return a.client.CreateQRPayment(ctx, req)
	})
}

func (a *AsyncClient) GetPayment(ctx context.Context, reference string) *Future[*types.Payment] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.Payment, error) {
		return a.client.GetPayment(ctx, reference)
	})
}

func (a *AsyncClient) ListPayments(ctx context.Context, opts types.ListOptions) *Future[*types.PaymentList] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.PaymentList, error) {
		return a.client.ListPayments(ctx, opts)
	})
}

func (a *AsyncClient) GetBalance(ctx context.Context) *Future[*types.Balance] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.Balance, error) {
		return a.client.GetBalance(ctx)
	})
}

func (a *AsyncClient) CreateMobilePayout(ctx context.Context, req *types.CreateMobilePayoutRequest) *Future[*types.Payout] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.Payout, error) {
		return a.client.CreateMobilePayout(ctx, req)
	})
}

func (a *AsyncClient) CreateBankPayout(ctx context.Context, req *types.CreateBankPayoutRequest) *Future[*types.Payout] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.Payout, error) {
		return a.client.CreateBankPayout(ctx, req)
	})
}

func (a *AsyncClient) GetPayout(ctx context.Context, reference string) *Future[*types.Payout] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.Payout, error) {
		return a.client.GetPayout(ctx, reference)
	})
}

func (a *AsyncClient) ListPayouts(ctx context.Context, opts types.ListOptions) *Future[*types.PayoutList] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.PayoutList, error) {
		return a.client.ListPayouts(ctx, opts)
	})
}

func (a *AsyncClient) CalculatePayoutFee(ctx context.Context, amount int64) *Future[*types.PayoutFee] {
	return dispatch(a, ctx, func(ctx context.Context) (*types.PayoutFee, error) {
		return a.client.CalculatePayoutFee(ctx, amount)
	})
}
