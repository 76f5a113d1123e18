package httputils

import (
	"encoding/json"
	"log"
	"net/http"

	"simplechat/internal/validation"
)

type ErrorResponse struct {
	Message string                 `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

func ResponseError(w http.ResponseWriter, errorCode int, errorMessage string) {
	ResponseJSON(w, errorCode, ErrorResponse{
		Message: errorMessage,
	})
}

func ResponseValidationError(w http.ResponseWriter, fields validation.Errors) {
	ResponseJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "Validation failed",
		Errors:  fields,
	})
}

func ResponseJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
