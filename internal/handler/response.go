// Package handler implements the HTTP transport: CRUD endpoints for the
// configuration tables plus the schedule generation and validation
// endpoints described in spec §6. It is a thin layer over
// internal/scheduling and internal/repository — no domain logic lives here.
package handler

import (
	"encoding/json"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"error":   http.StatusText(status),
		"message": message,
	})
}
