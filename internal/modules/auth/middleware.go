package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Require is a chi middleware rejecting requests without a valid Bearer
// token. On success the caller's identity is stored in the request context.
func Require(s Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				deny(w)
				return
			}

			id, err := s.Authenticate(r.Context(), parts[1])
			if err != nil {
				deny(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"Status": false,
		"Error":  "Log in required",
	})
}
