package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/service"
)

type MilestoneHandler struct {
	milestones *service.MilestoneService
}

func NewMilestoneHandler(milestones *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones}
}

func (h *MilestoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Description string `json:"description"`
		Date        string `json:"date"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	milestone, err := h.milestones.Create(r.Context(), userID, service.CreateMilestoneRequest{
		Description: body.Description,
		Date:        date,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, milestone)
}

func (h *MilestoneHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	milestones, err := h.milestones.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, milestones)
}

func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid milestone id", nil)
		return
	}
	if err := h.milestones.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusNoContent, nil)
}

func (h *MilestoneHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := h.milestones.DeleteAll(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusNoContent, nil)
}
