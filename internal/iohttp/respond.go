package iohttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leafdex/leafdex/pkg/leafdex"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			s.logger.Error("response encoding failed", "error", err)
		}
	}
}

// respondError maps an error to a status code. Policy outcomes carry
// their own statuses; anything unrecognized is an internal failure
// and its detail stays in the log, not in the response.
func (s *Server) respondError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, leafdex.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, leafdex.ErrPlantNotFound):
		status = http.StatusNotFound
	case errors.Is(err, leafdex.ErrDuplicateDiscovery),
		errors.Is(err, leafdex.ErrAlreadyCaretaker),
		errors.Is(err, leafdex.ErrUserExists),
		errors.Is(err, leafdex.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, leafdex.ErrNotAPlant),
		errors.Is(err, leafdex.ErrLowConfidence),
		errors.Is(err, leafdex.ErrScreenSuspected),
		errors.Is(err, leafdex.ErrInvalidCareImage):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, leafdex.ErrAnalysisFailed):
		status = http.StatusBadGateway
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		msg = "internal error"
	}

	s.respondJSON(w, status, errorBody{Error: msg})
}
