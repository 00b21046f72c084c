package config

import (
	"fmt"

	"github.com/qdm12/findyourip/pkg/doh"
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Lookup struct {
	Providers []string
	Retries   *uint16
}

func (l *Lookup) setDefaults() {
	l.Providers = gosettings.DefaultSlice(l.Providers, []string{string(doh.Google)})
	const defaultRetries = 2
	l.Retries = gosettings.DefaultPointer(l.Retries, defaultRetries)
}

func (l Lookup) Validate() (err error) {
	for _, provider := range l.Providers {
		err = doh.ValidateProvider(doh.Provider(provider))
		if err != nil {
			return fmt.Errorf("DNS over HTTPS provider: %w", err)
		}
	}
	return nil
}

func (l Lookup) String() string {
	return l.toLinesNode().String()
}

func (l Lookup) toLinesNode() *gotree.Node {
	node := gotree.New("Domain lookup")
	providersNode := node.Appendf("DNS over HTTPS providers")
	for _, provider := range l.Providers {
		providersNode.Appendf("%s", provider)
	}
	node.Appendf("Retries: %d", *l.Retries)
	return node
}

func (l Lookup) ToOptions() (options []doh.Option) {
	providers := make([]doh.Provider, len(l.Providers))
	for i, provider := range l.Providers {
		providers[i] = doh.Provider(provider)
	}
	return []doh.Option{
		doh.SetProviders(providers[0], providers[1:]...),
		doh.SetRetries(uint(*l.Retries)),
	}
}

func (l *Lookup) read(reader *reader.Reader) (err error) {
	l.Providers = reader.CSV("DOH_PROVIDERS")
	l.Retries, err = reader.Uint16Ptr("DOH_RETRIES")
	return err
}
