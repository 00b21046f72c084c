package server

import (
	"bytes"
	"net/http"

	"github.com/qdm12/findyourip/internal/frontend"
	"golang.org/x/sync/errgroup"
)

type indexData struct {
	frontend.Page
	RootURL   string
	DomainTab bool
}

// index locates the caller, increments the visitor count
// and renders the page.
func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	session := h.newSession()
	err := session.Load(r.Context(), h.origin(r))
	if err != nil {
		h.logger.Debug("loading page: " + err.Error())
	}
	h.render(w, indexData{
		Page:    session.Page(),
		RootURL: h.rootURL,
	})
}

// lookupPage looks up the domain given in the query, if any,
// and renders the page on the domain lookup tab.
// The visitor count is read but not incremented.
func (h *handlers) lookupPage(w http.ResponseWriter, r *http.Request) {
	session := h.newSession()
	ctx := r.Context()
	domain := r.URL.Query().Get("domain")

	var group errgroup.Group
	group.Go(func() error {
		return session.FetchCount(ctx)
	})
	if domain != "" {
		group.Go(func() error {
			return session.Lookup(ctx, domain)
		})
	}
	err := group.Wait()
	if err != nil {
		h.logger.Debug("looking up domain " + domain + ": " + err.Error())
	}

	h.render(w, indexData{
		Page:      session.Page(),
		RootURL:   h.rootURL,
		DomainTab: true,
	})
}

func (h *handlers) render(w http.ResponseWriter, data indexData) {
	// Prevent caching since every page load locates the caller
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	buffer := new(bytes.Buffer)
	err := h.indexTemplate.ExecuteTemplate(buffer, "index.html", data)
	if err != nil {
		h.logger.Error(err.Error())
		httpError(w, http.StatusInternalServerError, "failed generating webpage: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buffer.WriteTo(w)
}
