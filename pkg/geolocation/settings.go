package geolocation

import "time"

type settings struct {
	providers     []Provider
	retries       *uint
	retryInterval time.Duration
}

func (s *settings) setDefaults() {
	if len(s.providers) == 0 {
		s.providers = []Provider{IPAPI}
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
