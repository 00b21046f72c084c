package server

import (
	"net/http"
	"net/netip"

	"github.com/qdm12/findyourip/pkg/ipextract"
)

// origin returns the public IP address of the client sending the request.
// The proxy headers X-Forwarded-For and X-Real-IP are only used if
// trusted. It returns the zero address if no public address is found,
// in which case geolocation providers locate the server itself.
func (h *handlers) origin(r *http.Request) netip.Addr {
	if h.trustProxyHeaders {
		for _, header := range [...]string{"X-Forwarded-For", "X-Real-IP"} {
			ip := ipextract.FirstPublic(r.Header.Get(header))
			if ip.IsValid() {
				return ip
			}
		}
	}

	addrPort, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil {
		return netip.Addr{}
	}
	ip := addrPort.Addr().Unmap()
	if !ipextract.IsPublic(ip) {
		return netip.Addr{}
	}
	return ip
}
