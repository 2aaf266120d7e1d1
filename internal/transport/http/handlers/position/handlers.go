package positionhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/domain/position"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

type Service interface {
	List(ctx context.Context, req page.Request) (page.Result[position.Position], error)
	FindByID(ctx context.Context, id int64) (position.Position, error)
	Create(ctx context.Context, name string) (position.Position, error)
	ListByEmployee(ctx context.Context, employeeID int64, req page.Request) (page.Result[position.Position], error)
	FindByEmployee(ctx context.Context, employeeID, positionID int64) (position.Position, error)
	Assign(ctx context.Context, employeeID, positionID int64) (position.Position, error)
	Unassign(ctx context.Context, employeeID, positionID int64) error
}

type Handler struct {
	Service Service
	Kit     *shared.Kit
}

func NewHandler(svc Service, kit *shared.Kit) *Handler {
	return &Handler{Service: svc, Kit: kit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/positions", h.handleList)
	r.Post("/positions", h.handleCreate)
	r.Get("/positions/{positionId}", h.handleGet)

	r.Get("/employees/{employeeId}/positions", h.handleListForEmployee)
	r.Get("/employees/{employeeId}/positions/{positionId}", h.handleGetForEmployee)
	r.Put("/employees/{employeeId}/positions/{positionId}", h.handleAssign)
	r.Delete("/employees/{employeeId}/positions/{positionId}", h.handleUnassign)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	req, err := h.Kit.ParsePage(r, position.SortColumns)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	result, err := h.Service.List(r.Context(), req)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.WritePage(w, r, result, toResponse)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := h.Kit.PathID(r, "positionId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	p, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, r, toResponse(p))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := h.Kit.Decode(r, &req); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	created, err := h.Service.Create(r.Context(), req.Name)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	resp := toResponse(created)
	h.Kit.Record(r, audit.ActionCreate, "position", created.ID, nil, resp)
	api.Created(w, r, resp)
}

func (h *Handler) ids(r *http.Request) (employeeID, positionID int64, err error) {
	if employeeID, err = h.Kit.PathID(r, "employeeId"); err != nil {
		return 0, 0, err
	}
	positionID, err = h.Kit.PathID(r, "positionId")
	return employeeID, positionID, err
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	req, err := h.Kit.ParsePage(r, position.SortColumns)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	result, err := h.Service.ListByEmployee(r.Context(), employeeID, req)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.WritePage(w, r, result, toResponse)
}

func (h *Handler) handleGetForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, positionID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	p, err := h.Service.FindByEmployee(r.Context(), employeeID, positionID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, r, toResponse(p))
}

// handleAssign is idempotent: assigning a held position is a no-op.
func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	employeeID, positionID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	p, err := h.Service.Assign(r.Context(), employeeID, positionID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionUpdate, "employee_position", employeeID, nil, assignment{EmployeeID: employeeID, Position: toResponse(p)})
	api.NoContent(w)
}

func (h *Handler) handleUnassign(w http.ResponseWriter, r *http.Request) {
	employeeID, positionID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	p, err := h.Service.FindByEmployee(r.Context(), employeeID, positionID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if err := h.Service.Unassign(r.Context(), employeeID, positionID); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionDelete, "employee_position", employeeID, assignment{EmployeeID: employeeID, Position: toResponse(p)}, nil)
	api.NoContent(w)
}
