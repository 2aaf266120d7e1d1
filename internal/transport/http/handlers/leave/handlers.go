package leavehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/domain/leave"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

type Service interface {
	ListByEmployee(ctx context.Context, employeeID int64, req page.Request) (page.Result[leave.Leave], error)
	FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (leave.Leave, error)
	Create(ctx context.Context, employeeID int64, l leave.Leave) (leave.Leave, error)
	Update(ctx context.Context, employeeID, id int64, changes leave.Leave) (leave.Leave, error)
	Delete(ctx context.Context, employeeID, id int64) error
}

type Handler struct {
	Service Service
	Kit     *shared.Kit
}

func NewHandler(svc Service, kit *shared.Kit) *Handler {
	return &Handler{Service: svc, Kit: kit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees/{employeeId}/leaves", h.handleList)
	r.Post("/employees/{employeeId}/leaves", h.handleCreate)
	r.Get("/employees/{employeeId}/leaves/{leaveId}", h.handleGet)
	r.Put("/employees/{employeeId}/leaves/{leaveId}", h.handleUpdate)
	r.Delete("/employees/{employeeId}/leaves/{leaveId}", h.handleDelete)
}

func (h *Handler) ids(r *http.Request) (employeeID, leaveID int64, err error) {
	if employeeID, err = h.Kit.PathID(r, "employeeId"); err != nil {
		return 0, 0, err
	}
	leaveID, err = h.Kit.PathID(r, "leaveId")
	return employeeID, leaveID, err
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	req, err := h.Kit.ParsePage(r, leave.SortColumns)
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

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employeeID, leaveID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	l, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, leaveID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, r, toResponse(l))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	l, err := h.decode(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	created, err := h.Service.Create(r.Context(), employeeID, l)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	resp := toResponse(created)
	h.Kit.Record(r, audit.ActionCreate, "leave", created.ID, nil, resp)
	api.Created(w, r, resp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	employeeID, leaveID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	changes, err := h.decode(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, leaveID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	updated, err := h.Service.Update(r.Context(), employeeID, leaveID, changes)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionUpdate, "leave", leaveID, toResponse(before), toResponse(updated))
	api.NoContent(w)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	employeeID, leaveID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, leaveID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), employeeID, leaveID); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionDelete, "leave", leaveID, toResponse(before), nil)
	api.NoContent(w)
}

func (h *Handler) decode(r *http.Request) (leave.Leave, error) {
	var req request
	if err := h.Kit.Decode(r, &req); err != nil {
		return leave.Leave{}, err
	}
	l := req.toModel()
	if _, err := leave.Days(l.StartDate, l.EndDate); err != nil {
		return leave.Leave{}, h.Kit.Invalid(api.FieldIssue{Field: "endDate", Reason: "must not be before startDate"})
	}
	return l, nil
}
