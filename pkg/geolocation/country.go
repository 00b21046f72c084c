package geolocation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// countryCodeToName converts an ISO 3166-1 alpha-2 country code
// to its English name, or returns the code as is if it is unknown.
func countryCodeToName(code string) (name string) {
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	name = display.English.Regions().Name(region)
	if name == "" {
		return code
	}
	return name
}
