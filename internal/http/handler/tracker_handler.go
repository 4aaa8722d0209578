package handler

import (
	"net/http"

	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/service"
)

// TrackerHandler serves the daily activity, weight and step logs.
type TrackerHandler struct {
	activities *service.ActivityService
	weights    *service.WeightService
	steps      *service.StepsService
}

func NewTrackerHandler(activities *service.ActivityService, weights *service.WeightService, steps *service.StepsService) *TrackerHandler {
	return &TrackerHandler{activities: activities, weights: weights, steps: steps}
}

func (h *TrackerHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Date     string `json:"date"`
		Workouts int    `json:"workouts"`
		Calories int    `json:"calories"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	entry, err := h.activities.Log(r.Context(), userID, service.LogActivityRequest{
		Date:     date,
		Workouts: body.Workouts,
		Calories: body.Calories,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entry)
}

func (h *TrackerHandler) ActivitySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	entries, err := h.activities.Summary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entries)
}

func (h *TrackerHandler) ActivityHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	entries, err := h.activities.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entries)
}

func (h *TrackerHandler) ClearActivityHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := h.activities.ClearHistory(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusNoContent, nil)
}

func (h *TrackerHandler) LogWeight(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Date   string  `json:"date"`
		Weight float64 `json:"weight"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	entry, err := h.weights.Log(r.Context(), userID, service.LogWeightRequest{Date: date, Weight: body.Weight})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entry)
}

func (h *TrackerHandler) WeightHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	entries, err := h.weights.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entries)
}

func (h *TrackerHandler) ClearWeightHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := h.weights.ClearHistory(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusNoContent, nil)
}

func (h *TrackerHandler) LogSteps(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Steps int `json:"steps"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	entry, err := h.steps.LogToday(r.Context(), userID, service.LogStepsRequest{Steps: body.Steps})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entry)
}

func (h *TrackerHandler) StepsToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	entry, err := h.steps.Today(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entry)
}
