// Package frontend holds the state of a page session: the caller
// location, the domain lookup result and the visitor count.
package frontend

import (
	"context"
	"net/netip"
	"strconv"
	"sync"

	"github.com/qdm12/findyourip/pkg/geolocation"
	"golang.org/x/sync/errgroup"
)

type Session struct {
	locator  Locator
	resolver Resolver
	counter  Counter
	logger   Logger
	metrics  Metrics

	mutex         sync.RWMutex
	locationState LocationState
	location      geolocation.Result
	locationError string
	domainState   DomainState
	domain        string
	domainResult  string
	counterState  CounterState
	count         uint64
	// countFromIncrement is true once the count displayed comes from
	// an increment, so a concurrent plain read does not override it.
	countFromIncrement bool
	mapView            MapView
}

func NewSession(locator Locator, resolver Resolver, counter Counter,
	logger Logger, metrics Metrics) *Session {
	return &Session{
		locator:  locator,
		resolver: resolver,
		counter:  counter,
		logger:   logger,
		metrics:  metrics,
		mapView:  defaultMapView(),
	}
}

// Load locates the caller and fetches the visitor count concurrently,
// as done when the page is first loaded. The first error encountered
// is returned, but the session state reflects both operations.
func (s *Session) Load(ctx context.Context, origin netip.Addr) error {
	var group errgroup.Group
	group.Go(func() error {
		return s.Refresh(ctx, origin)
	})
	group.Go(func() error {
		return s.FetchCount(ctx)
	})
	return group.Wait()
}

// Refresh locates the caller at the given origin address, or at the
// network origin seen by the geolocation provider if origin is the zero
// address. On success, the visitor count is incremented; an increment
// failure is only logged.
func (s *Session) Refresh(ctx context.Context, origin netip.Addr) error {
	s.mutex.Lock()
	s.locationState = LocationLoading
	s.locationError = ""
	s.mutex.Unlock()

	result, err := s.locator.Locate(ctx, origin)
	s.metrics.Located(err == nil)
	if err != nil {
		s.mutex.Lock()
		s.locationState = LocationFailed
		s.locationError = err.Error()
		s.mutex.Unlock()
		return err
	}

	s.mutex.Lock()
	s.locationState = Located
	s.location = result
	s.mapView = MapView{
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		Zoom:      locatedZoom,
	}
	s.mutex.Unlock()

	newCount, err := s.counter.Increment(ctx)
	if err != nil {
		s.logger.Warn("incrementing visitor count: " + err.Error())
		return nil
	}

	s.mutex.Lock()
	s.counterState = CounterKnown
	s.count = newCount
	s.countFromIncrement = true
	s.mutex.Unlock()
	return nil
}

// FetchCount reads the visitor count. A failure is only logged
// and leaves the counter state unchanged.
func (s *Session) FetchCount(ctx context.Context) error {
	count, err := s.counter.Count(ctx)
	if err != nil {
		s.logger.Warn("fetching visitor count: " + err.Error())
		return nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.countFromIncrement {
		s.logger.Debug("ignoring visitor count " + strconv.FormatUint(count, 10) +
			" read concurrently with an increment")
		return nil
	}
	s.counterState = CounterKnown
	s.count = count
	return nil
}

// Lookup resolves the IPv4 address of the domain given.
func (s *Session) Lookup(ctx context.Context, domain string) error {
	ip, err := s.resolver.Resolve(ctx, domain)
	s.metrics.LookedUp(err == nil)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.domain = domain
	if err != nil {
		s.domainState = DomainLookupFailed
		s.domainResult = DomainLookupFailedMessage
		return err
	}
	s.domainState = DomainLookedUp
	s.domainResult = ip.String()
	return nil
}

// Page returns a snapshot of the session.
func (s *Session) Page() Page {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return Page{
		LocationState: s.locationState,
		Location:      s.location,
		LocationError: s.locationError,
		DomainState:   s.domainState,
		Domain:        s.domain,
		DomainResult:  s.domainResult,
		CounterState:  s.counterState,
		Count:         s.count,
		Map:           s.mapView,
	}
}
