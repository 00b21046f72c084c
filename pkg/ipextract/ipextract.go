// Package ipextract extracts IP addresses from free form text such
// as the value of an X-Forwarded-For header.
package ipextract

import (
	"net/netip"
	"strings"
)

// All extracts all valid and unique IPv4 and IPv6 addresses from a given
// text string, in their order of appearance. Each address must be
// separated by a character not part of the IP alphabet (0-9, a-f, A-F, '.', ':').
// IPv4-mapped IPv6 addresses are unmapped to IPv4 addresses.
func All(text string) (addresses []netip.Addr) {
	const ipAlphabet = "0123456789abcdefABCDEF.:"
	addressesSeen := make(map[netip.Addr]struct{})
	var start, end int
	for {
		for i := start; i < len(text); i++ {
			if !strings.ContainsRune(ipAlphabet, rune(text[i])) {
				break
			}
			end++
		}

		possibleIPString := text[start:end]
		ipAddress, err := netip.ParseAddr(possibleIPString)
		if err == nil {
			ipAddress = ipAddress.Unmap()
			_, seen := addressesSeen[ipAddress]
			if !seen {
				addressesSeen[ipAddress] = struct{}{}
				addresses = append(addresses, ipAddress)
			}
		}

		if end >= len(text) {
			return addresses
		}

		start = end + 1 // + 1 to skip non alphabet match character
		end = start
	}
}

// FirstPublic returns the first public IP address found in the text,
// or the zero address if there is none.
func FirstPublic(text string) (address netip.Addr) {
	for _, address := range All(text) {
		if IsPublic(address) {
			return address
		}
	}
	return netip.Addr{}
}

// IsPublic returns true if the address is valid and routable on the
// internet, that is not private, loopback, link local or unspecified.
func IsPublic(address netip.Addr) bool {
	return address.IsValid() &&
		!address.IsPrivate() &&
		!address.IsLoopback() &&
		!address.IsUnspecified() &&
		!address.IsLinkLocalUnicast() &&
		!address.IsLinkLocalMulticast() &&
		!address.IsMulticast()
}
