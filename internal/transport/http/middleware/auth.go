package middleware

import (
	"net/http"
	"strings"

	"hrrecords/internal/domain/auth"
	"hrrecords/internal/requestctx"
)

type TokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// Auth resolves the bearer token into a principal. Requests without a valid
// token continue anonymously; RequireRole decides whether that is allowed.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				requestctx.Logger(r.Context()).WithError(err).Debug("bearer token rejected")
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.WithPrincipal(r.Context(), principal)
			ctx = requestctx.WithLogger(ctx, requestctx.Logger(ctx).WithField("principal", principal.Name))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
