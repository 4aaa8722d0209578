package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/syncfit/syncfit-backend/internal/http/middleware"
	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/service"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses. The
// mapping is part of the client contract; changing a status is observable to
// clients probing for valid emails.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, service.ErrAlreadyRegistered):
		response.Error(w, r, http.StatusConflict, "ALREADY_REGISTERED", "email already registered", nil)
	case errors.Is(err, service.ErrAlreadyVerified):
		response.Error(w, r, http.StatusConflict, "ALREADY_VERIFIED", "account already verified", nil)
	case errors.Is(err, service.ErrInvalidCode):
		response.Error(w, r, http.StatusUnauthorized, "INVALID_CODE", "invalid verification code", nil)
	case errors.Is(err, service.ErrCodeExpired):
		response.Error(w, r, http.StatusGone, "CODE_EXPIRED", "verification code expired", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials", nil)
	case errors.Is(err, service.ErrNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "not found", nil)
	case errors.Is(err, service.ErrUnsupportedImage):
		response.Error(w, r, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", err.Error(), nil)
	case errors.Is(err, service.ErrDeliveryFailed):
		response.Error(w, r, http.StatusBadGateway, "DELIVERY_FAILED", "could not deliver verification email", nil)
	case errors.Is(err, service.ErrStoreUnavailable):
		response.Error(w, r, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "storage temporarily unavailable", nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return false
	}
	return true
}

// currentUserID reads the authenticated user id set by AuthMiddleware.
// Returns false after writing a 401 when the request is unauthenticated.
func currentUserID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing session", nil)
		return 0, false
	}
	return id, true
}

// parseDate accepts a calendar date ("2006-01-02") or a full RFC 3339
// timestamp; trackers only keep the day.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.New("date must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}

func parsePathID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
