package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
)

func newIPAPI(client *http.Client, baseURL string) *ipapi {
	return &ipapi{
		client:  client,
		baseURL: baseURL,
	}
}

type ipapi struct {
	client  *http.Client
	baseURL string
}

func (p *ipapi) get(ctx context.Context, ip netip.Addr) (
	result Result, err error) {
	result.Source = string(IPAPI)

	url := p.baseURL + "/json/"
	if ip.IsValid() {
		url = p.baseURL + "/" + ip.String() + "/json/"
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

	err = checkStatus(response)
	if err != nil {
		return result, err
	}

	decoder := json.NewDecoder(response.Body)
	var data struct {
		Error       bool       `json:"error"`
		Reason      string     `json:"reason"`
		IP          netip.Addr `json:"ip"`
		City        string     `json:"city"`
		Region      string     `json:"region"`
		CountryName string     `json:"country_name"`
		Latitude    float64    `json:"latitude"`
		Longitude   float64    `json:"longitude"`
	}
	err = decoder.Decode(&data)
	if err != nil {
		return result, fmt.Errorf("decoding JSON response: %w", err)
	}

	if data.Error {
		reason := data.Reason
		if reason == "" {
			reason = "no reason given"
		}
		return result, fmt.Errorf("%w: %s", ErrUpstream, reason)
	}

	result.IP = data.IP
	result.City = data.City
	result.Region = data.Region
	result.Country = data.CountryName
	result.Latitude = data.Latitude
	result.Longitude = data.Longitude
	return result, nil
}
