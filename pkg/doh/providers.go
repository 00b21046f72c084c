package doh

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
)

type Provider string

const (
	Google     Provider = "google"
	Cloudflare Provider = "cloudflare"
	Quad9      Provider = "quad9"
)

func ListProviders() []Provider {
	return []Provider{
		Google,
		Cloudflare,
		Quad9,
	}
}

var ErrUnknownProvider = errors.New("unknown DNS over HTTPS provider")

func ValidateProvider(provider Provider) error {
	for _, possible := range ListProviders() {
		if provider == possible {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
}

type provider interface {
	resolve(ctx context.Context, domain string) (ip netip.Addr, err error)
}

func newProvider(providerName Provider, client *http.Client) provider { //nolint:ireturn
	switch providerName {
	case Google:
		return newJSONAPI(client, "https://dns.google/resolve", false)
	case Cloudflare:
		return newJSONAPI(client, "https://cloudflare-dns.com/dns-query", true)
	case Quad9:
		return newWire(client, "https://dns.quad9.net/dns-query")
	default:
		panic(fmt.Sprintf("provider %s not implemented", providerName))
	}
}
