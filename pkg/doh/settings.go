package doh

import (
	"errors"
	"fmt"
	"time"
)

type settings struct {
	providers     []Provider
	retries       *uint
	retryInterval time.Duration
}

func (s *settings) setDefaults() {
	if len(s.providers) == 0 {
		s.providers = []Provider{Google}
	}
	if s.retries == nil {
		const defaultRetries = 2
		retries := uint(defaultRetries)
		s.retries = &retries
	}
	if s.retryInterval == 0 {
		const defaultRetryInterval = 500 * time.Millisecond
		s.retryInterval = defaultRetryInterval
	}
}

type Option func(s *settings) error

func SetProviders(first Provider, providers ...Provider) Option {
	return func(s *settings) (err error) {
		providers = append([]Provider{first}, providers...)
		for _, provider := range providers {
			err = ValidateProvider(provider)
			if err != nil {
				return err
			}
		}
		s.providers = providers
		return nil
	}
}

func SetRetries(retries uint) Option {
	return func(s *settings) error {
		s.retries = &retries
		return nil
	}
}

var ErrRetryIntervalNotPositive = errors.New("retry interval is not positive")

func SetRetryInterval(interval time.Duration) Option {
	return func(s *settings) error {
		if interval <= 0 {
			return fmt.Errorf("%w: %s", ErrRetryIntervalNotPositive, interval)
		}
		s.retryInterval = interval
		return nil
	}
}
