package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes body as the response. The status line is already sent
// when encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).WithField("status", status).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors onto status codes. Business
// rejections are reported as 500 with the reason, which is what the browser
// extension expects.
func writeServiceError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	if rejection, ok := domain.IsRejection(err); ok {
		writeError(w, log, http.StatusInternalServerError, rejection.Reason)
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidVote),
		errors.Is(err, domain.ErrInvalidHostname),
		errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidLinks),
		errors.Is(err, domain.ErrInvalidSettings):
		writeError(w, log, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, log, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		log.WithError(err).Warn("request failed on storage")
		writeError(w, log, http.StatusServiceUnavailable, domain.ErrUnavailable.Error())
	default:
		log.WithError(err).Error("unexpected error")
		writeError(w, log, http.StatusServiceUnavailable, domain.ErrUnavailable.Error())
	}
}
