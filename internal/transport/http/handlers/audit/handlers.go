package audithandler

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/auth"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/requestctx"
	"hrrecords/internal/transport/http/middleware"
	"hrrecords/internal/transport/http/shared"
)

type Service interface {
	Find(ctx context.Context, f audit.Filter, req page.Request) (page.Result[audit.Entry], error)
}

type Handler struct {
	Service Service
	Kit     *shared.Kit
}

func NewHandler(svc Service, kit *shared.Kit) *Handler {
	return &Handler{Service: svc, Kit: kit}
}

// RegisterRoutes exposes the trail to admins only, reads included.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit-events", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExport)
	})
}

func filterFrom(r *http.Request) audit.Filter {
	q := r.URL.Query()
	return audit.Filter{
		Actor:      q.Get("actor"),
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	req, err := h.Kit.ParsePage(r, audit.SortColumns)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	result, err := h.Service.Find(r.Context(), filterFrom(r), req)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.WritePage(w, r, result, toResponse)
}

// handleExport writes the current page of matches as CSV.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := h.Kit.ParsePage(r, audit.SortColumns)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	result, err := h.Service.Find(r.Context(), filterFrom(r), req)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=audit-events.csv")
	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	log := requestctx.Logger(r.Context())
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "actor", "action", "entity_type", "entity_id", "request_id", "ip", "created_at"}); err != nil {
		log.WithError(err).Warn("audit export header failed")
	}
	for _, e := range result.Items {
		row := []string{
			strconv.FormatInt(e.ID, 10), e.Actor, e.Action, e.EntityType, e.EntityID, e.RequestID, e.IP,
			e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			log.WithError(err).Warn("audit export row failed")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.WithError(err).Warn("audit export flush failed")
	}
}
