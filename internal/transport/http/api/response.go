package api

import (
	"encoding/json"
	"net/http"
	"time"

	"hrrecords/internal/requestctx"
)

type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrorBody is the uniform body of every 4xx and 5xx response.
type ErrorBody struct {
	Message   string       `json:"message"`
	ErrorURL  string       `json:"errorUrl"`
	ErrorTime time.Time    `json:"errorTime"`
	RequestID string       `json:"requestId,omitempty"`
	Fields    []FieldIssue `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		requestctx.Logger(r.Context()).WithError(err).Warn("write json failed")
	}
}

func Success(w http.ResponseWriter, r *http.Request, data any) {
	WriteJSON(w, r, http.StatusOK, data)
}

func Created(w http.ResponseWriter, r *http.Request, data any) {
	WriteJSON(w, r, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	FailWithFields(w, r, status, message, nil)
}

func FailWithFields(w http.ResponseWriter, r *http.Request, status int, message string, fields []FieldIssue) {
	WriteJSON(w, r, status, ErrorBody{
		Message:   message,
		ErrorURL:  RequestURL(r),
		ErrorTime: time.Now().UTC(),
		RequestID: requestctx.GetRequestID(r.Context()),
		Fields:    fields,
	})
}

// RequestURL is the absolute URL of the request without its query string.
func RequestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	if r.Host == "" {
		return r.URL.Path
	}
	return scheme + "://" + r.Host + r.URL.Path
}
