package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	log     logrus.FieldLogger
}

func NewVoteHandler(service ports.VoteService, log logrus.FieldLogger) *VoteHandler {
	return &VoteHandler{
		service: service,
		log:     log,
	}
}

type voteRequest struct {
	Link   linkBody `json:"link"`
	Value  int      `json:"value" validate:"required,oneof=-1 1"`
	UserID string   `json:"user_id" validate:"required"`
}

func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, validationMessage(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, domain.ErrInvalidUserID.Error())
		return
	}

	input := ports.VoteInput{
		Hostname: req.Link.Hostname,
		UserID:   userID,
		Value:    domain.VoteValue(req.Value),
	}

	if err := h.service.Vote(r.Context(), input); err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
