package middleware

import (
	"net/http"
	"runtime/debug"

	"hrrecords/internal/requestctx"
	"hrrecords/internal/transport/http/api"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			requestctx.Logger(r.Context()).
				WithField("panic", rec).
				WithField("stack", string(debug.Stack())).
				Error("handler panicked")
			api.Fail(w, r, http.StatusInternalServerError, "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
