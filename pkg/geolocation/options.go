package geolocation

import (
	"errors"
	"fmt"
	"time"
)

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

// SetRetries sets the maximum number of retries done on network
// and server side errors. It defaults to 2.
func SetRetries(retries uint) Option {
	return func(s *settings) error {
		s.retries = &retries
		return nil
	}
}

var ErrRetryIntervalNotPositive = errors.New("retry interval is not positive")

// SetRetryInterval sets the initial interval between retries,
// which grows exponentially with jitter. It defaults to 500ms.
func SetRetryInterval(interval time.Duration) Option {
	return func(s *settings) error {
		if interval <= 0 {
			return fmt.Errorf("%w: %s", ErrRetryIntervalNotPositive, interval)
		}
		s.retryInterval = interval
		return nil
	}
}
