package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"teledetect-platform/internal/model"
	"teledetect-platform/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, model.BaseResponse{
		Success:   success,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// writeError maps service errors onto the uniform envelope. Domain errors
// carry their own status; anything unclassified becomes an opaque 500 and
// is logged server-side.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeMessage(w, apiErr.HTTPStatus, false, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, false, "User not found")
	case errors.Is(err, model.ErrUserAlreadyExists):
		writeMessage(w, http.StatusBadRequest, false, "Email or username already taken")
	case errors.Is(err, model.ErrInvalidToken), errors.Is(err, model.ErrNoSession):
		writeMessage(w, http.StatusUnauthorized, false, "Invalid or expired token")
	default:
		slog.Error("unhandled error at HTTP boundary", "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
	}
}
