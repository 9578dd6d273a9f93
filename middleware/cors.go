// ABOUTME: CORS middleware for API cross-origin requests
// ABOUTME: Echoes configured origins and handles preflight OPTIONS

package middleware

import "net/http"

// CORS returns middleware that adds CORS headers for configured origins.
// An empty list disables cross-origin access entirely. A single "*"
// entry allows any origin. Otherwise the request Origin is echoed back
// only when it matches the allow list, with Vary: Origin set so caches
// keep per-origin responses separate.
//
// OPTIONS preflight requests return 200 OK without calling the wrapped
// handler.
func CORS(allowedOrigins []string) func(http.HandlerFunc) http.HandlerFunc {
	allowAll := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-CSRF-Token")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next(w, r)
		}
	}
}
