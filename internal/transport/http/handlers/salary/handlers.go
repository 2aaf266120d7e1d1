package salaryhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/domain/salary"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

type Service interface {
	ListByEmployee(ctx context.Context, employeeID int64, req page.Request) (page.Result[salary.Salary], error)
	FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (salary.Salary, error)
	Create(ctx context.Context, employeeID int64, sal salary.Salary) (salary.Salary, error)
	Update(ctx context.Context, employeeID, id int64, changes salary.Salary) (salary.Salary, error)
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
	r.Get("/employees/{employeeId}/salaries", h.handleList)
	r.Post("/employees/{employeeId}/salaries", h.handleCreate)
	r.Get("/employees/{employeeId}/salaries/{salaryId}", h.handleGet)
	r.Put("/employees/{employeeId}/salaries/{salaryId}", h.handleUpdate)
	r.Delete("/employees/{employeeId}/salaries/{salaryId}", h.handleDelete)
}

func (h *Handler) ids(r *http.Request) (employeeID, salaryID int64, err error) {
	if employeeID, err = h.Kit.PathID(r, "employeeId"); err != nil {
		return 0, 0, err
	}
	salaryID, err = h.Kit.PathID(r, "salaryId")
	return employeeID, salaryID, err
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	req, err := h.Kit.ParsePage(r, salary.SortColumns)
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
	employeeID, salaryID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	sal, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, salaryID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, r, toResponse(sal))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	sal, err := h.decode(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	created, err := h.Service.Create(r.Context(), employeeID, sal)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	resp := toResponse(created)
	h.Kit.Record(r, audit.ActionCreate, "salary", created.ID, nil, resp)
	api.Created(w, r, resp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	employeeID, salaryID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	changes, err := h.decode(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, salaryID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	updated, err := h.Service.Update(r.Context(), employeeID, salaryID, changes)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionUpdate, "salary", salaryID, toResponse(before), toResponse(updated))
	api.NoContent(w)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	employeeID, salaryID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, salaryID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), employeeID, salaryID); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionDelete, "salary", salaryID, toResponse(before), nil)
	api.NoContent(w)
}

func (h *Handler) decode(r *http.Request) (salary.Salary, error) {
	var req request
	if err := h.Kit.Decode(r, &req); err != nil {
		return salary.Salary{}, err
	}
	sal := req.toModel()
	if shared.EndBeforeStart(sal.StartDate, sal.EndDate) {
		return salary.Salary{}, h.Kit.Invalid(api.FieldIssue{Field: "endDate", Reason: "must not be before startDate"})
	}
	return sal, nil
}
