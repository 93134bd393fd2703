package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/otp-login-api/internal/application/session"
	"github.com/otp-login-api/internal/domain"
)

// SessionHandler handles the session read path.
type SessionHandler struct {
	svc session.Service
	dev bool
}

func NewSessionHandler(svc session.Service, dev bool) *SessionHandler {
	return &SessionHandler{svc: svc, dev: dev}
}

// Check resolves the caller's session token to an identity. A missing or
// expired token is a normal outcome, answered 200 with success=false; only
// a store failure is a 500.
func (h *SessionHandler) Check(w http.ResponseWriter, r *http.Request) {
	tok := sessionToken(r)
	if tok == "" {
		writeJSON(w, http.StatusOK, Envelope{Success: false, Message: "no session cookie found"})
		return
	}

	ident, err := h.svc.Resolve(r.Context(), tok)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusOK, Envelope{Success: false, Message: "invalid or expired session"})
		return
	}
	if err != nil {
		storeError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, Envelope{Success: true, Identity: ident})
}

// sessionToken extracts the token from the session cookie, falling back to
// an Authorization bearer header.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(domain.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
