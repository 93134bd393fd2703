package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/otp-login-api/internal/application/otp"
	"github.com/otp-login-api/internal/application/session"
	"github.com/otp-login-api/internal/domain"
	"github.com/otp-login-api/internal/pkg/validate"
)

// IssueRequest is the credential-intake payload. The password is validated
// for presence and then discarded: authentication is an explicit always-
// succeed pass-through policy, and the value is never stored, logged, or
// forwarded.
type IssueRequest struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
	Provider string `json:"provider" validate:"required"`
}

type ResendRequest struct {
	Identity string `json:"identity" validate:"required"`
	Provider string `json:"provider" validate:"required"`
}

type VerifyRequest struct {
	Identity string `json:"identity" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// OTPHandler handles code issuance and verification endpoints.
type OTPHandler struct {
	otpSvc     otp.Service
	sessionSvc session.Service
	dev        bool
}

func NewOTPHandler(otpSvc otp.Service, sessionSvc session.Service, dev bool) *OTPHandler {
	return &OTPHandler{otpSvc: otpSvc, sessionSvc: sessionSvc, dev: dev}
}

func (h *OTPHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	otc, err := h.otpSvc.Issue(r.Context(), req.Identity, req.Provider)
	if err != nil {
		httpError(w, err, h.dev)
		return
	}

	// The code itself travels only through the notification side channel.
	writeJSON(w, http.StatusOK, Envelope{Success: true, Identity: otc.Identity})
}

func (h *OTPHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req ResendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	otc, err := h.otpSvc.Resend(r.Context(), req.Identity, req.Provider)
	if err != nil {
		httpError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, Envelope{Success: true, Identity: otc.Identity})
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "missing identity or code")
		return
	}

	ident, err := h.otpSvc.Verify(r.Context(), req.Identity, req.Code)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusBadRequest, "code not found or expired")
		return
	case errors.Is(err, domain.ErrMismatch):
		writeError(w, http.StatusUnauthorized, "invalid code")
		return
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "missing identity or code")
		return
	default:
		storeError(w, err, h.dev)
		return
	}

	sess, err := h.sessionSvc.Create(r.Context(), ident)
	if err != nil {
		storeError(w, err, h.dev)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(domain.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, Envelope{Success: true})
}
