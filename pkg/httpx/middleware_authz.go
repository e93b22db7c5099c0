package httpx

import (
	"encoding/json"
	"net/http"
)

// RequireAnyRole rejects the request with 403 unless the authenticated
// caller's role is in the allowed set. Relationship-level checks (e.g. "is
// the lead of this project") stay in the services; this only gates by role.
func RequireAnyRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromContext(r.Context())]; !ok {
				writeForbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Uniform external message: the caller learns they lack access, not why.
func writeForbidden(w http.ResponseWriter) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             "forbidden",
		"error_description": "you do not have permission to perform this action",
	})
}
