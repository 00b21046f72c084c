package doh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"

	"github.com/miekg/dns"
)

// jsonAPI resolves domains using the JSON API offered by
// Google and Cloudflare.
type jsonAPI struct {
	client *http.Client
	url    string
	// acceptHeader is true if the API requires the
	// application/dns-json Accept header.
	acceptHeader bool
}

func newJSONAPI(client *http.Client, url string, acceptHeader bool) *jsonAPI {
	return &jsonAPI{
		client:       client,
		url:          url,
		acceptHeader: acceptHeader,
	}
}

func (j *jsonAPI) resolve(ctx context.Context, domain string) (
	ip netip.Addr, err error) {
	values := url.Values{}
	values.Set("name", domain)
	values.Set("type", "A")
	requestURL := j.url + "?" + values.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return ip, fmt.Errorf("creating request: %w", err)
	}
	if j.acceptHeader {
		request.Header.Set("Accept", "application/dns-json")
	}

	response, err := j.client.Do(request)
	if err != nil {
		return ip, fmt.Errorf("doing request: %w", err)
	}
	defer response.Body.Close()

	err = checkStatus(response)
	if err != nil {
		return ip, err
	}

	decoder := json.NewDecoder(response.Body)
	var data struct {
		Status int `json:"Status"`
		Answer []struct {
			Name string `json:"name"`
			Type uint16 `json:"type"`
			Data string `json:"data"`
		} `json:"Answer"`
	}
	err = decoder.Decode(&data)
	if err != nil {
		return ip, fmt.Errorf("decoding JSON response: %w", err)
	}

	if data.Status != dns.RcodeSuccess {
		return ip, fmt.Errorf("%w: %s", ErrResponseCode, rcodeToString(data.Status))
	}

	for _, answer := range data.Answer {
		if answer.Type == dns.TypeCNAME {
			continue
		}
		ip, err = netip.ParseAddr(answer.Data)
		if err != nil {
			return ip, fmt.Errorf("%w: %s", ErrIPMalformed, answer.Data)
		}
		return ip, nil
	}

	return ip, fmt.Errorf("%w: for %s", ErrNoAnswer, domain)
}

func rcodeToString(rcode int) string {
	s, ok := dns.RcodeToString[rcode]
	if !ok {
		return fmt.Sprintf("RCODE%d", rcode)
	}
	return s
}
