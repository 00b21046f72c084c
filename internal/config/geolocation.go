package config

import (
	"fmt"

	"github.com/qdm12/findyourip/pkg/geolocation"
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Geolocation struct {
	Providers []string
	Retries   *uint16
}

func (g *Geolocation) setDefaults() {
	g.Providers = gosettings.DefaultSlice(g.Providers, []string{string(geolocation.IPAPI)})
	const defaultRetries = 2
	g.Retries = gosettings.DefaultPointer(g.Retries, defaultRetries)
}

func (g Geolocation) Validate() (err error) {
	for _, provider := range g.Providers {
		err = geolocation.ValidateProvider(geolocation.Provider(provider))
		if err != nil {
			return fmt.Errorf("provider: %w", err)
		}
	}
	return nil
}

func (g Geolocation) String() string {
	return g.toLinesNode().String()
}

func (g Geolocation) toLinesNode() *gotree.Node {
	node := gotree.New("Geolocation")
	providersNode := node.Appendf("Providers")
	for _, provider := range g.Providers {
		providersNode.Appendf("%s", provider)
	}
	node.Appendf("Retries: %d", *g.Retries)
	return node
}

func (g Geolocation) ToOptions() (options []geolocation.Option) {
	providers := make([]geolocation.Provider, len(g.Providers))
	for i, provider := range g.Providers {
		providers[i] = geolocation.Provider(provider)
	}
	return []geolocation.Option{
		geolocation.SetProviders(providers[0], providers[1:]...),
		geolocation.SetRetries(uint(*g.Retries)),
	}
}

func (g *Geolocation) read(reader *reader.Reader) (err error) {
	g.Providers = reader.CSV("GEOLOCATION_PROVIDERS")
	g.Retries, err = reader.Uint16Ptr("GEOLOCATION_RETRIES")
	return err
}
