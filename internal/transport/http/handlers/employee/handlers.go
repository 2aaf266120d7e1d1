package employeehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/employee"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

type Service interface {
	FindAll(ctx context.Context, criteria employee.Criteria, req page.Request) (page.Result[employee.Employee], error)
	FindByID(ctx context.Context, id int64) (employee.Employee, error)
	Create(ctx context.Context, emp employee.Employee) (employee.Employee, error)
	Update(ctx context.Context, id int64, changes employee.Employee) (employee.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	Service Service
	Kit     *shared.Kit
}

func NewHandler(svc Service, kit *shared.Kit) *Handler {
	return &Handler{Service: svc, Kit: kit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleList)
	r.Post("/employees", h.handleCreate)
	r.Get("/employees/{employeeId}", h.handleGet)
	r.Put("/employees/{employeeId}", h.handleUpdate)
	r.Delete("/employees/{employeeId}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.criteria(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	req, err := h.Kit.ParsePage(r, employee.SortColumns)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	result, err := h.Service.FindAll(r.Context(), criteria, req)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.WritePage(w, r, result, toResponse)
}

func (h *Handler) criteria(r *http.Request) (employee.Criteria, error) {
	query := r.URL.Query()
	c := employee.Criteria{
		Name:         query.Get("name"),
		Surname:      query.Get("surname"),
		Patronymic:   query.Get("patronymic"),
		Email:        query.Get("email"),
		PhoneNumber:  query.Get("phoneNumber"),
		PositionName: query.Get("positionName"),
	}
	var err error
	if c.DateOfBirth, err = h.Kit.QueryDate(r, "dateOfBirth"); err != nil {
		return c, err
	}
	if c.DateOfEmployment, err = h.Kit.QueryDate(r, "dateOfEmployment"); err != nil {
		return c, err
	}
	gender, err := h.Kit.QueryEnum(r, "gender", employee.Genders)
	if err != nil {
		return c, err
	}
	c.Gender = employee.Gender(gender)
	return c, nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	emp, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, r, toResponse(emp))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := h.Kit.Decode(r, &req); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	created, err := h.Service.Create(r.Context(), req.toModel())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	resp := toResponse(created)
	h.Kit.Record(r, audit.ActionCreate, "employee", created.ID, nil, resp)
	api.Created(w, r, resp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	var req request
	if err := h.Kit.Decode(r, &req); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	updated, err := h.Service.Update(r.Context(), id, req.toModel())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionUpdate, "employee", id, toResponse(before), toResponse(updated))
	api.NoContent(w)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionDelete, "employee", id, toResponse(before), nil)
	api.NoContent(w)
}
