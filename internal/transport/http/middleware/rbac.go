package middleware

import (
	"net/http"

	"hrrecords/internal/domain/auth"
	"hrrecords/internal/transport/http/api"
)

// RequireRole answers 401 without a principal and 403 when the principal
// holds none of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFrom(r.Context())
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="hrrecords"`)
				api.Fail(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			if !principal.HasAnyRole(roles...) {
				api.Fail(w, r, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ReadWriteGate applies read roles to safe methods and write roles to everything else.
func ReadWriteGate(readRoles, writeRoles []string) func(http.Handler) http.Handler {
	read := RequireRole(readRoles...)
	write := RequireRole(writeRoles...)
	return func(next http.Handler) http.Handler {
		readNext := read(next)
		writeNext := write(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				readNext.ServeHTTP(w, r)
			default:
				writeNext.ServeHTTP(w, r)
			}
		})
	}
}
