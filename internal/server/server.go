package server

import (
	"net/http"

	"github.com/qdm12/goservices/httpserver"
)

type Settings struct {
	Address           string
	RootURL           string
	TrustProxyHeaders bool
	// MetricsHandler is served on the /metrics path if it is not nil.
	MetricsHandler http.Handler
	Counter        Counter
	Locator        Locator
	Resolver       Resolver
	Metrics        Metrics
	Logger         Logger
}

func New(settings Settings) (server *httpserver.Server, err error) {
	handler, err := newHandler(settings)
	if err != nil {
		return nil, err
	}

	name := "http"
	return httpserver.New(httpserver.Settings{
		Handler: handler,
		Name:    &name,
		Address: &settings.Address,
		Logger:  settings.Logger,
	})
}
