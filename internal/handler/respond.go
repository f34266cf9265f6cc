package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorillasystems/auth-api/internal/payload"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, payload.ErrorResponse{Error: message})
}
