package handler

import (
	"net/http"

	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/service"
)

// FeedbackHandler serves the public review endpoints. No authentication.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Rating  int    `json:"rating"`
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	fb, err := h.feedback.Submit(r.Context(), service.SubmitFeedbackRequest{
		Name:    body.Name,
		Email:   body.Email,
		Rating:  body.Rating,
		Message: body.Message,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, fb)
}

func (h *FeedbackHandler) Recent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.feedback.Recent(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, entries)
}
