// Package doh resolves domain names to IPv4 addresses using
// DNS over HTTPS providers.
package doh

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

type Resolver struct {
	providers     []provider
	retries       uint
	retryInterval time.Duration
}

func New(client *http.Client, options ...Option) (r *Resolver, err error) {
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

	return &Resolver{
		providers:     providers,
		retries:       *settings.retries,
		retryInterval: settings.retryInterval,
	}, nil
}

// Resolve returns the first IPv4 address found for the A record
// of the given domain. The domain is sent as is to the provider.
func (r *Resolver) Resolve(ctx context.Context, domain string) (ip netip.Addr, err error) {
	provider := pickProvider(r.providers)

	operation := func() (err error) {
		ip, err = provider.resolve(ctx, domain)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = r.retryInterval
	exponential.MaxElapsedTime = 0
	backOff := backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(r.retries)), ctx)

	err = backoff.Retry(operation, backOff)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("resolving %s: %w", domain, err)
	}
	return ip, nil
}

// pickProvider returns one of the providers at random.
func pickProvider[T any](providers []T) T {
	if len(providers) == 1 {
		return providers[0]
	}
	return providers[rand.IntN(len(providers))] //nolint:gosec
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, ErrServerSide)
}
