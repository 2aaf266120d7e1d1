package middleware

import (
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"hrrecords/internal/domain/auth"
	"hrrecords/internal/requestctx"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

// RateLimit allows limit requests per minute per caller. Callers are keyed by
// principal when authenticated and by client IP otherwise.
func RateLimit(limit int64) func(http.Handler) http.Handler {
	return RateLimitWithStore(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: limit})
}

func RateLimitWithStore(store limiter.Store, rate limiter.Rate) func(http.Handler) http.Handler {
	mw := stdlib.NewMiddleware(
		limiter.New(store, rate),
		stdlib.WithKeyGetter(callerKey),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			requestctx.Logger(r.Context()).
				WithField("key", callerKey(r)).
				WithField("path", r.URL.Path).
				Warn("rate limit exceeded")
			api.Fail(w, r, http.StatusTooManyRequests, "too many requests")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			requestctx.Logger(r.Context()).WithError(err).Error("rate limiter failed")
			api.Fail(w, r, http.StatusInternalServerError, "internal server error")
		}),
	)
	return mw.Handler
}

func callerKey(r *http.Request) string {
	if principal, ok := auth.PrincipalFrom(r.Context()); ok && principal.Name != "" {
		return "principal:" + principal.Name
	}
	return "ip:" + shared.ClientIP(r)
}
