// Package geolocation finds the public IP address and approximate
// location of a caller using public geolocation APIs.
package geolocation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Client struct {
	providers     []provider
	retries       uint
	retryInterval time.Duration
}

func New(client *http.Client, options ...Option) (c *Client, err error) {
	var settings settings
	for _, option := range options {
		err = option(&settings)
		if err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	settings.setDefaults()

	providers := make([]provider, len(settings.providers))
	for i := range settings.providers {
		providers[i] = newProvider(settings.providers[i], client)
	}

	return &Client{
		providers:     providers,
		retries:       *settings.retries,
		retryInterval: settings.retryInterval,
	}, nil
}

// pickProvider returns one of the providers at random.
func pickProvider[T any](providers []T) T {
	if len(providers) == 1 {
		return providers[0]
	}
	return providers[rand.IntN(len(providers))] //nolint:gosec
}

// Locate finds the public IP address and location information for the
// given IP address, using one of the providers picked at random.
// If the IP address is the zero value, the provider locates the
// network origin of the request it receives.
// Network errors and server side errors are retried with an exponential
// backoff, but upstream logical errors and rate limiting are not.
func (c *Client) Locate(ctx context.Context, ip netip.Addr) (result Result, err error) {
	provider := pickProvider(c.providers)
	operation := func() (err error) {
		result, err = provider.get(ctx, ip)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err = backoff.Retry(operation, c.newBackOff(ctx))
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff { //nolint:ireturn
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = c.retryInterval
	exponential.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(c.retries)), ctx)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, ErrServerSide)
}
