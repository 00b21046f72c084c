package server

import "net/http"

type countResponse struct {
	Count uint64 `json:"count"`
}

func (h *handlers) getVisitorCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.counter.Count(r.Context())
	if err != nil {
		h.logger.Error(err.Error())
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *handlers) incrementVisitorCount(w http.ResponseWriter, r *http.Request) {
	newCount, err := h.counter.Increment(r.Context())
	if err != nil {
		h.logger.Error(err.Error())
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: newCount})
}
