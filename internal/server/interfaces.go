package server

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Counter,Locator,Resolver

import (
	"context"
	"net/http"
	"net/netip"

	"github.com/qdm12/findyourip/pkg/geolocation"
)

type Counter interface {
	Count(ctx context.Context) (count uint64, err error)
	Increment(ctx context.Context) (newCount uint64, err error)
}

type Locator interface {
	Locate(ctx context.Context, ip netip.Addr) (result geolocation.Result, err error)
}

type Resolver interface {
	Resolve(ctx context.Context, domain string) (ip netip.Addr, err error)
}

type Metrics interface {
	Middleware(next http.Handler) http.Handler
	Located(success bool)
	LookedUp(success bool)
}

type Logger interface {
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
}
