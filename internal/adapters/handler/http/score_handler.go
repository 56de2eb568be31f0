package http

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type ScoreHandler struct {
	service ports.ScoreService
	log     logrus.FieldLogger
}

func NewScoreHandler(service ports.ScoreService, log logrus.FieldLogger) *ScoreHandler {
	return &ScoreHandler{
		service: service,
		log:     log,
	}
}

type scoresQuery struct {
	Links []linkBody `json:"links" validate:"required,min=1,max=100,dive"`
}

type linkScoreResponse struct {
	Link  linkBody     `json:"link"`
	Score domain.Score `json:"score"`
}

// GetScores expects the query parameter from={"links":[{"hostname":...}]}.
func (h *ScoreHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		writeError(w, h.log, http.StatusBadRequest, "missing from query parameter")
		return
	}

	var query scoresQuery
	if err := json.Unmarshal([]byte(from), &query); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid from query parameter")
		return
	}
	if err := validate.Struct(query); err != nil {
		writeError(w, h.log, http.StatusBadRequest, validationMessage(err))
		return
	}

	hostnames := make([]string, len(query.Links))
	for i, l := range query.Links {
		hostnames[i] = l.Hostname
	}

	scores, err := h.service.GetScores(r.Context(), hostnames)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	resp := make([]linkScoreResponse, len(scores))
	for i, s := range scores {
		resp[i] = linkScoreResponse{Link: linkBody{Hostname: s.Hostname}, Score: s.Score}
	}
	writeJSON(w, h.log, http.StatusOK, resp)
}
