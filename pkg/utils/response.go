package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"travel-crm/internal/apperrors"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error maps a domain error to an HTTP response. Unknown errors map to 500
// with a generic message so internals never leak to clients.
func Error(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		JSON(w, http.StatusInternalServerError, errorBody{Status: "error", Message: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	}

	JSON(w, status, errorBody{Status: "error", Message: appErr.Message})
}
