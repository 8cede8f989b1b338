package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

// writeDetail writes the {"detail": msg} body used by the REST handlers.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg}) //nolint:errcheck
}
