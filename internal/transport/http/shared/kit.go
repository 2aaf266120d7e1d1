package shared

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/auth"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/requestctx"
)

type Auditor interface {
	Record(ctx context.Context, evt audit.Event) error
}

type WriteCounter interface {
	RecordWrite(entity, action string)
}

// Kit bundles what every resource handler needs besides its service.
type Kit struct {
	Messages        messages.Resolver
	Validate        *validator.Validate
	DefaultPageSize int
	MaxPageSize     int
	Audit           Auditor
	Metrics         WriteCounter
}

// PathID reads a positive integer path parameter.
func (k *Kit) PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidData(k.Messages.Get(messages.RequestIDInvalid, map[string]any{
			"Param": name,
			"Value": raw,
		}))
	}
	return id, nil
}

// Record writes an audit event and counts the write. Failures are logged and
// never reach the client.
func (k *Kit) Record(r *http.Request, action, entityType string, entityID int64, before, after any) {
	if k.Metrics != nil {
		k.Metrics.RecordWrite(entityType, action)
	}
	if k.Audit == nil {
		return
	}
	actor := ""
	if p, ok := auth.PrincipalFrom(r.Context()); ok {
		actor = p.Name
	}
	evt := audit.Event{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   strconv.FormatInt(entityID, 10),
		RequestID:  requestctx.GetRequestID(r.Context()),
		IP:         ClientIP(r),
		Before:     before,
		After:      after,
	}
	if err := k.Audit.Record(r.Context(), evt); err != nil {
		requestctx.Logger(r.Context()).WithError(err).WithFields(logrus.Fields{
			"entity": entityType,
			"id":     entityID,
			"action": action,
		}).Warn("audit record failed")
	}
}

// ClientIP prefers the first X-Forwarded-For hop over the socket address.
func ClientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if value := strings.TrimSpace(first); value != "" {
			return value
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
