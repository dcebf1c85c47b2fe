// Package http provides the HTTP handlers and router for the
// marketplace API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jdavril/brocante/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps each error kind to its status code and surfaces the
// error as a JSON message. Unknown errors become a generic 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrUpload), errors.Is(err, common.ErrDelete):
		status = http.StatusBadGateway
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// store internals stay out of responses
		message = "internal error"
	}
	writeMessage(w, status, message)
}
