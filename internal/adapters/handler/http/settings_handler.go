package http

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/core/domain"
	"github.com/vncsmyrnk/linkscore/internal/core/ports"
)

type SettingsHandler struct {
	service ports.SettingsService
	log     logrus.FieldLogger
}

func NewSettingsHandler(service ports.SettingsService, log logrus.FieldLogger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		log:     log,
	}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update domain.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.service.Update(r.Context(), update)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, settings)
}
