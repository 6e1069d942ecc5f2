package utils

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the envelope every failed request returns.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WriteError sends the error envelope with the given status code.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{
		Status:  "error",
		Message: message,
	})
}
