package frontend

import "github.com/qdm12/findyourip/pkg/geolocation"

// DomainLookupFailedMessage is displayed in place of the domain
// IP address when the lookup fails.
const DomainLookupFailedMessage = "Failed to lookup domain IP"

const (
	defaultZoom = 2
	locatedZoom = 13
)

// MapView is the center and zoom level of the map.
type MapView struct {
	Latitude  float64
	Longitude float64
	Zoom      int
}

func defaultMapView() MapView {
	return MapView{Zoom: defaultZoom}
}

// Page is a snapshot of a session, ready to be rendered.
type Page struct {
	LocationState LocationState
	Location      geolocation.Result
	LocationError string

	DomainState DomainState
	Domain      string
	// DomainResult is the IP address found for the domain,
	// or DomainLookupFailedMessage.
	DomainResult string

	CounterState CounterState
	Count        uint64

	Map MapView
}

func (p Page) Loading() bool        { return p.LocationState == LocationLoading }
func (p Page) Located() bool        { return p.LocationState == Located }
func (p Page) LocationFailed() bool { return p.LocationState == LocationFailed }
func (p Page) CountKnown() bool     { return p.CounterState == CounterKnown }
