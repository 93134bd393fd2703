package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/otp-login-api/internal/domain"
)

// Envelope is the generic response wrapper the login front-end consumes.
type Envelope struct {
	Success  bool   `json:"success"`
	Identity string `json:"identity,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Success: false, Message: msg})
}

// storeError answers a store failure with a generic message; the underlying
// detail is included only in development mode.
func storeError(w http.ResponseWriter, err error, dev bool) {
	env := Envelope{Success: false, Message: "internal server error"}
	if dev {
		env.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, env)
}

// httpError maps domain sentinel errors to status codes for the issue path.
// Anything that is not a client fault is treated as a store failure.
func httpError(w http.ResponseWriter, err error, dev bool) {
	if errors.Is(err, domain.ErrBadRequest) {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	storeError(w, err, dev)
}
