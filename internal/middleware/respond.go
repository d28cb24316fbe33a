package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"teledetect-platform/internal/model"
	"teledetect-platform/pkg/apierror"
)

func writeAPIError(w http.ResponseWriter, apiErr *apierror.APIError) {
	writeEnvelope(w, apiErr.HTTPStatus, apiErr.Message)
}

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.BaseResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
