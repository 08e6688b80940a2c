package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

type M map[string]any

// RespondWithError writes {"error": msg}.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"error": msg})
}

// RespondWithStatus writes the {"success", "message"} envelope used by the
// booking mutation routes.
func RespondWithStatus(w http.ResponseWriter, code int, success bool, msg string) {
	RespondWithJSON(w, code, M{"success": success, "message": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Printf("[utils] encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}
