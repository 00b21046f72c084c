package server

import (
	"net/http"
)

type locationResponse struct {
	IP          string  `json:"ip"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	CountryName string  `json:"country_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func (h *handlers) getLocation(w http.ResponseWriter, r *http.Request) {
	result, err := h.locator.Locate(r.Context(), h.origin(r))
	h.metrics.Located(err == nil)
	if err != nil {
		h.logger.Warn("locating caller: " + err.Error())
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}

	response := locationResponse{
		City:        result.City,
		Region:      result.Region,
		CountryName: result.Country,
		Latitude:    result.Latitude,
		Longitude:   result.Longitude,
	}
	if result.IP.IsValid() {
		response.IP = result.IP.String()
	}
	writeJSON(w, http.StatusOK, response)
}

type lookupResponse struct {
	Domain string `json:"domain"`
	IP     string `json:"ip"`
}

func (h *handlers) getLookup(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		httpError(w, http.StatusBadRequest, "domain query parameter is missing")
		return
	}

	ip, err := h.resolver.Resolve(r.Context(), domain)
	h.metrics.LookedUp(err == nil)
	if err != nil {
		h.logger.Warn("looking up domain: " + err.Error())
		httpError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, lookupResponse{Domain: domain, IP: ip.String()})
}
