package handlers

import (
	"encoding/json"
	"net/http"
)

// User-facing messages for failures whose detail must stay server-side.
const (
	msgDataUnavailable    = "Unable to load data. Please try again later."
	msgTranslationFailed  = "Couldn't understand that question. Please try rephrasing, or use the structured filters."
	msgTranslationTimeout = "Translation timed out. Please try again."
)

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ErrorJSON writes a {"error": message} response and returns any
// encoding error.
func ErrorJSON(w http.ResponseWriter, statusCode int, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{"error": message})
}
