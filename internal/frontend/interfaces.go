package frontend

import (
	"context"
	"net/netip"

	"github.com/qdm12/findyourip/pkg/geolocation"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Locator,Resolver,Counter,Logger

type Locator interface {
	Locate(ctx context.Context, ip netip.Addr) (result geolocation.Result, err error)
}

type Resolver interface {
	Resolve(ctx context.Context, domain string) (ip netip.Addr, err error)
}

type Counter interface {
	Count(ctx context.Context) (count uint64, err error)
	Increment(ctx context.Context) (newCount uint64, err error)
}

type Logger interface {
	Debug(s string)
	Warn(s string)
}

type Metrics interface {
	Located(success bool)
	LookedUp(success bool)
}
