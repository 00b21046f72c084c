package doh

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"

	"github.com/miekg/dns"
)

const dnsMessageContentType = "application/dns-message"

// wire resolves domains using the DNS wire format over HTTPS
// described in RFC 8484.
type wire struct {
	client *http.Client
	url    string
}

func newWire(client *http.Client, url string) *wire {
	return &wire{
		client: client,
		url:    url,
	}
}

func (w *wire) resolve(ctx context.Context, domain string) (
	ip netip.Addr, err error) {
	query := new(dns.Msg)
	query.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	// RFC 8484 section 4.1 recommends an ID of 0 for caching.
	query.Id = 0
	packed, err := query.Pack()
	if err != nil {
		return ip, fmt.Errorf("packing DNS query: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(packed))
	if err != nil {
		return ip, fmt.Errorf("creating request: %w", err)
	}
	request.Header.Set("Content-Type", dnsMessageContentType)
	request.Header.Set("Accept", dnsMessageContentType)

	response, err := w.client.Do(request)
	if err != nil {
		return ip, fmt.Errorf("doing request: %w", err)
	}
	defer response.Body.Close()

	err = checkStatus(response)
	if err != nil {
		return ip, err
	}

	b, err := io.ReadAll(io.LimitReader(response.Body, dns.MaxMsgSize))
	if err != nil {
		return ip, fmt.Errorf("reading response body: %w", err)
	}

	reply := new(dns.Msg)
	err = reply.Unpack(b)
	if err != nil {
		return ip, fmt.Errorf("unpacking DNS response: %w", err)
	}

	if reply.Rcode != dns.RcodeSuccess {
		return ip, fmt.Errorf("%w: %s", ErrResponseCode, rcodeToString(reply.Rcode))
	}

	for _, rr := range reply.Answer {
		switch record := rr.(type) {
		case *dns.CNAME:
			continue
		case *dns.A:
			var ok bool
			ip, ok = netip.AddrFromSlice(record.A.To4())
			if !ok {
				return ip, fmt.Errorf("%w: %s", ErrIPMalformed, record.A)
			}
			return ip, nil
		default:
			return ip, fmt.Errorf("%w: %s", ErrIPMalformed, rr.String())
		}
	}

	return ip, fmt.Errorf("%w: for %s", ErrNoAnswer, domain)
}
