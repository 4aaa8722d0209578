package handler

import (
	"net/http"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/service"
)

type NutritionHandler struct {
	nutrition *service.NutritionService
}

func NewNutritionHandler(nutrition *service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutrition: nutrition}
}

func (h *NutritionHandler) Log(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Date     string        `json:"date"`
		Calories float64       `json:"calories"`
		Protein  float64       `json:"protein"`
		Carbs    float64       `json:"carbs"`
		Fats     float64       `json:"fats"`
		Meals    []domain.Meal `json:"meals"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	entry, err := h.nutrition.Log(r.Context(), userID, service.LogNutritionRequest{
		Date:     date,
		Calories: body.Calories,
		Protein:  body.Protein,
		Carbs:    body.Carbs,
		Fats:     body.Fats,
		Meals:    body.Meals,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entry)
}

func (h *NutritionHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	entries, err := h.nutrition.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entries)
}
