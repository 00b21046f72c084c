package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/qdm12/findyourip/internal/frontend"
)

//go:embed ui/index.html
var uiFS embed.FS

type handlers struct {
	rootURL           string
	trustProxyHeaders bool
	counter           Counter
	locator           Locator
	resolver          Resolver
	metrics           Metrics
	logger            Logger
	indexTemplate     *template.Template
}

func newHandler(settings Settings) (handler http.Handler, err error) {
	indexTemplate, err := template.ParseFS(uiFS, "ui/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}

	rootURL := strings.TrimSuffix(settings.RootURL, "/")

	handlers := &handlers{
		rootURL:           rootURL,
		trustProxyHeaders: settings.TrustProxyHeaders,
		counter:           settings.Counter,
		locator:           settings.Locator,
		resolver:          settings.Resolver,
		metrics:           settings.Metrics,
		logger:            settings.Logger,
		indexTemplate:     indexTemplate,
	}

	router := chi.NewRouter()

	router.Use(middleware.Recoverer, middleware.CleanPath,
		requestIDMiddleware, newLogMiddleware(settings.Logger),
		settings.Metrics.Middleware)

	// CleanPath drops the trailing slash of a non-root URL.
	router.Get(rootURL+"/", handlers.index)
	if rootURL != "" {
		router.Get(rootURL, handlers.index)
	}
	router.Get(rootURL+"/lookup", handlers.lookupPage)

	router.Get(rootURL+"/api/getVisitorCount", handlers.getVisitorCount)
	router.Post(rootURL+"/api/incrementVisitorCount", handlers.incrementVisitorCount)
	router.Get(rootURL+"/api/location", handlers.getLocation)
	router.Get(rootURL+"/api/lookup", handlers.getLookup)

	if settings.MetricsHandler != nil {
		router.Method(http.MethodGet, rootURL+"/metrics", settings.MetricsHandler)
	}

	return router, nil
}

func (h *handlers) newSession() *frontend.Session {
	return frontend.NewSession(h.locator, h.resolver, h.counter, h.logger, h.metrics)
}
