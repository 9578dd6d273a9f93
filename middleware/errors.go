// ABOUTME: JSON error writer for middleware rejections
// ABOUTME: Rate-limit, CSRF, and auth failures use the API's error shape

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/marinops/fleet-spares-analyzer/models"
)

// writeJSONError rejects a request with the same ErrorResponse body the
// handlers produce, so clients parse one error shape everywhere.
func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
