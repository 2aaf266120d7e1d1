// Package sharedtest holds helpers for exercising resource handlers in tests.
package sharedtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

// Auditor keeps recorded events in memory.
type Auditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *Auditor) Record(_ context.Context, evt audit.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, evt)
	return nil
}

func (a *Auditor) Events() []audit.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]audit.Event(nil), a.events...)
}

// NewKit returns a kit with English messages, page size 20 and max 100.
func NewKit(t testing.TB) (*shared.Kit, *Auditor) {
	t.Helper()
	catalog, err := messages.New("en")
	require.NoError(t, err)
	auditor := &Auditor{}
	return &shared.Kit{
		Messages:        catalog,
		Validate:        shared.NewValidate(),
		DefaultPageSize: 20,
		MaxPageSize:     100,
		Audit:           auditor,
	}, auditor
}

// Router mounts a handler's routes on a fresh chi router.
func Router(register func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	register(r)
	return r
}

// Do sends a request with an optional JSON body.
func Do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func ErrorBody(t testing.TB, rec *httptest.ResponseRecorder) api.ErrorBody {
	t.Helper()
	var body api.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// FieldReasons flattens a validation error body into field → reason.
func FieldReasons(t testing.TB, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, f := range ErrorBody(t, rec).Fields {
		out[f.Field] = f.Reason
	}
	return out
}
