package handler

import (
	"net/http"

	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	settings, err := h.settings.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Theme         *string `json:"theme"`
		Notifications *bool   `json:"notifications"`
		Language      *string `json:"language"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	settings, err := h.settings.Update(r.Context(), userID, service.UpdateSettingsRequest{
		Theme:         body.Theme,
		Notifications: body.Notifications,
		Language:      body.Language,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, settings)
}
