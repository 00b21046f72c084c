package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
)

func newIP2Location(client *http.Client, baseURL string) *ip2Location {
	return &ip2Location{
		client:  client,
		baseURL: baseURL,
	}
}

type ip2Location struct {
	client  *http.Client
	baseURL string
}

func (p *ip2Location) get(ctx context.Context, ip netip.Addr) (
	result Result, err error) {
	result.Source = string(IP2Location)

	url := p.baseURL + "/"
	if ip.IsValid() {
		url += "?ip=" + ip.String()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result, fmt.Errorf("creating request: %w", err)
	}

	response, err := p.client.Do(request)
	if err != nil {
		return result, fmt.Errorf("doing request: %w", err)
	}
	defer response.Body.Close()

	// ip2location.io answers errors such as an invalid IP address
	// with a 4xx status and a JSON error envelope.
	if response.StatusCode != http.StatusBadRequest &&
		response.StatusCode != http.StatusUnauthorized {
		err = checkStatus(response)
		if err != nil {
			return result, err
		}
	}

	decoder := json.NewDecoder(response.Body)
	var data struct {
		Error *struct {
			Code    int    `json:"error_code"`
			Message string `json:"error_message"`
		} `json:"error"`
		IP          netip.Addr `json:"ip"`
		RegionName  string     `json:"region_name"`
		CountryName string     `json:"country_name"`
		CityName    string     `json:"city_name"`
		Latitude    float64    `json:"latitude"`
		Longitude   float64    `json:"longitude"`
		// More fields available see https://www.ip2location.io/ip2location-documentation
	}
	err = decoder.Decode(&data)
	if err != nil {
		return result, fmt.Errorf("decoding JSON response: %w", err)
	}

	if data.Error != nil {
		return result, fmt.Errorf("%w: %s (code %d)", ErrUpstream,
			data.Error.Message, data.Error.Code)
	}

	result.IP = data.IP
	result.City = data.CityName
	result.Region = data.RegionName
	result.Country = data.CountryName
	result.Latitude = data.Latitude
	result.Longitude = data.Longitude
	return result, nil
}
