package handler

import (
	"net/http"

	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/service"
)

type CalculatorHandler struct {
	calculators *service.CalculatorService
}

func NewCalculatorHandler(calculators *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculators: calculators}
}

func (h *CalculatorHandler) CalculateBMI(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Height float64 `json:"height"`
		Weight float64 `json:"weight"`
		Unit   string  `json:"unit"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	record, err := h.calculators.CalculateBMI(r.Context(), userID, service.BMIRequest{
		Height: body.Height,
		Weight: body.Weight,
		Unit:   body.Unit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, record)
}

func (h *CalculatorHandler) BMIHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	records, err := h.calculators.BMIHistory(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, records)
}

func (h *CalculatorHandler) CalculateCalories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Age      int     `json:"age"`
		Gender   string  `json:"gender"`
		Height   float64 `json:"height"`
		Weight   float64 `json:"weight"`
		Activity string  `json:"activity"`
		Unit     string  `json:"unit"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	record, err := h.calculators.CalculateCalories(r.Context(), userID, service.CalorieRequest{
		Age:      body.Age,
		Gender:   body.Gender,
		Height:   body.Height,
		Weight:   body.Weight,
		Activity: body.Activity,
		Unit:     body.Unit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, record)
}

func (h *CalculatorHandler) CalorieHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	records, err := h.calculators.CalorieHistory(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, records)
}
