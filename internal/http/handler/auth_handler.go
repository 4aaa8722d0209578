package handler

import (
	"net/http"
	"time"

	"github.com/syncfit/syncfit-backend/internal/http/response"
	"github.com/syncfit/syncfit-backend/internal/observability"
	"github.com/syncfit/syncfit-backend/internal/service"
)

// AuthHandler exposes the OTP-gated registration and login flows.
type AuthHandler struct {
	identity *service.IdentityService
}

func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// RequestRegistrationCode issues a registration code for a new email. The
// returned ref must be echoed back on completion.
func (h *AuthHandler) RequestRegistrationCode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "register_request_code", status, time.Since(start))
	}()

	var body struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &body) {
		status = "failure"
		return
	}

	res, err := h.identity.RequestRegistrationCode(r.Context(), service.RegistrationCodeRequest{Email: body.Email})
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.register.code.failed", "reason", err.Error())
		writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.register.code.issued", "ref", res.Ref)
	response.JSON(w, r, http.StatusOK, res)
}

// CompleteRegistration promotes the referenced provisional record.
func (h *AuthHandler) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "register_complete", status, time.Since(start))
	}()

	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Code     string `json:"code"`
		Ref      uint   `json:"ref"`
	}
	if !decodeJSON(w, r, &body) {
		status = "failure"
		return
	}

	res, err := h.identity.CompleteRegistration(r.Context(), service.CompleteRegistrationRequest{
		Name:           body.Name,
		Email:          body.Email,
		Password:       body.Password,
		Code:           body.Code,
		ProvisionalRef: body.Ref,
	})
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.register.complete.failed", "reason", err.Error())
		writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.register.complete.success", "user_id", res.User.ID)
	response.JSON(w, r, http.StatusCreated, res)
}

// RequestLoginCode issues a login code for a verified account.
func (h *AuthHandler) RequestLoginCode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "login_request_code", status, time.Since(start))
	}()

	var body struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &body) {
		status = "failure"
		return
	}

	if err := h.identity.RequestLoginCode(r.Context(), service.LoginCodeRequest{Email: body.Email}); err != nil {
		status = "failure"
		observability.Audit(r, "auth.login.code.failed", "reason", err.Error())
		writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.login.code.issued")
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "code sent"})
}

// Login exchanges email, password and a fresh code for a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "login", status, time.Since(start))
	}()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if !decodeJSON(w, r, &body) {
		status = "failure"
		return
	}

	res, err := h.identity.Login(r.Context(), service.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
		Code:     body.Code,
	})
	if err != nil {
		status = "failure"
		observability.Audit(r, "auth.login.failed", "reason", err.Error())
		writeServiceError(w, r, err)
		return
	}
	observability.Audit(r, "auth.login.success", "user_id", res.User.ID)
	response.JSON(w, r, http.StatusOK, res)
}
