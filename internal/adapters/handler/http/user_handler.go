package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
	log     logrus.FieldLogger
}

func NewUserHandler(service ports.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

type banRequest struct {
	IsBanned *bool `json:"is_banned" validate:"required"`
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, domain.ErrInvalidUserID.Error())
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, user)
}

func (h *UserHandler) SetBanned(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, domain.ErrInvalidUserID.Error())
		return
	}

	var req banRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := h.service.SetBanned(r.Context(), userID, *req.IsBanned)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, user)
}
