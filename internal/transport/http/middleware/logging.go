package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"hrrecords/internal/requestctx"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// Logger attaches a request-scoped logger to the context and writes one
// access line per request.
func Logger(base logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := base.WithField("requestId", GetRequestID(r.Context()))
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r.WithContext(requestctx.WithLogger(r.Context(), entry)))

			fields := logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     recorder.status,
				"bytes":      recorder.bytes,
				"durationMs": time.Since(start).Milliseconds(),
			}
			switch {
			case recorder.status >= http.StatusInternalServerError:
				entry.WithFields(fields).Error("request")
			case recorder.status >= http.StatusBadRequest:
				entry.WithFields(fields).Warn("request")
			default:
				entry.WithFields(fields).Info("request")
			}
		})
	}
}
