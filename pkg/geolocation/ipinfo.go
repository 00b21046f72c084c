package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
)

func newIpinfo(client *http.Client, baseURL string) *ipinfo {
	return &ipinfo{
		client:  client,
		baseURL: baseURL,
	}
}

type ipinfo struct {
	client  *http.Client
	baseURL string
}

func (p *ipinfo) get(ctx context.Context, ip netip.Addr) (
	result Result, err error) {
	result.Source = string(Ipinfo)

	url := p.baseURL + "/"
	if ip.IsValid() {
		url += ip.String()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result, fmt.Errorf("creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := p.client.Do(request)
	if err != nil {
		return result, fmt.Errorf("doing request: %w", err)
	}
	defer response.Body.Close()

	err = checkStatus(response)
	if err != nil {
		return result, err
	}

	decoder := json.NewDecoder(response.Body)
	var data struct {
		IP      netip.Addr `json:"ip"`
		Bogon   bool       `json:"bogon"`
		Region  string     `json:"region"`
		Country string     `json:"country"`
		City    string     `json:"city"`
		Loc     string     `json:"loc"`
	}
	err = decoder.Decode(&data)
	if err != nil {
		return result, fmt.Errorf("decoding JSON response: %w", err)
	}

	if data.Bogon {
		return result, fmt.Errorf("%w: %s is a bogon address", ErrUpstream, data.IP)
	}

	result.Latitude, result.Longitude, err = parseLoc(data.Loc)
	if err != nil {
		return result, fmt.Errorf("parsing location: %w", err)
	}

	result.IP = data.IP
	result.City = data.City
	result.Region = data.Region
	if data.Country != "" {
		result.Country = countryCodeToName(data.Country)
	}
	return result, nil
}

var ErrLocationMalformed = errors.New("location is malformed")

// parseLoc parses a "latitude,longitude" string.
func parseLoc(loc string) (latitude, longitude float64, err error) {
	latitudeString, longitudeString, found := strings.Cut(loc, ",")
	if !found {
		return 0, 0, fmt.Errorf("%w: %q", ErrLocationMalformed, loc)
	}

	const bitSize = 64
	latitude, err = strconv.ParseFloat(latitudeString, bitSize)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude: %w", ErrLocationMalformed, err)
	}
	longitude, err = strconv.ParseFloat(longitudeString, bitSize)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude: %w", ErrLocationMalformed, err)
	}
	return latitude, longitude, nil
}
