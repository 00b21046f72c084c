package geolocation

import "net/netip"

type Result struct {
	IP        netip.Addr
	City      string
	Region    string
	Country   string
	Latitude  float64
	Longitude float64
	// Source is the name of the provider which produced the result.
	Source string
}
