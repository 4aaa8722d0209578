package handler

import (
	"errors"
	"net/http"

	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/service"
)

// ProfileHandler serves the account behind the authenticated session.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	user, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	user, err := h.profiles.Update(r.Context(), userID, service.UpdateProfileRequest{Name: body.Name, Email: body.Email})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.profiles.ChangePassword(r.Context(), userID, service.ChangePasswordRequest{
		Current: body.CurrentPassword,
		New:     body.NewPassword,
	}); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "password updated"})
}

// UploadImage accepts a multipart "image" part and stores it as the profile
// picture.
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "missing image file", nil)
		return
	}
	defer file.Close()

	img, err := h.profiles.UploadImage(r.Context(), userID, file, header.Size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, img)
}

func (h *ProfileHandler) ImageURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	url, err := h.profiles.ImageURL(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "no profile image set", nil)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"url": url})
}

func (h *ProfileHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := h.profiles.DeleteImage(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusNoContent, nil)
}

func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := h.profiles.DeleteAccount(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "account.deleted", "user_id", userID)
	response.JSON(w, r, http.StatusNoContent, nil)
}
