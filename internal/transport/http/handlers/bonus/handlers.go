package bonushandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/domain/bonus"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

type Service interface {
	ListByEmployee(ctx context.Context, employeeID int64, req page.Request) (page.Result[bonus.Bonus], error)
	FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (bonus.Bonus, error)
	Create(ctx context.Context, employeeID int64, b bonus.Bonus) (bonus.Bonus, error)
	Update(ctx context.Context, employeeID, id int64, changes bonus.Bonus) (bonus.Bonus, error)
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
	r.Get("/employees/{employeeId}/bonuses", h.handleList)
	r.Post("/employees/{employeeId}/bonuses", h.handleCreate)
	r.Get("/employees/{employeeId}/bonuses/{bonusId}", h.handleGet)
	r.Put("/employees/{employeeId}/bonuses/{bonusId}", h.handleUpdate)
	r.Delete("/employees/{employeeId}/bonuses/{bonusId}", h.handleDelete)
}

func (h *Handler) ids(r *http.Request) (employeeID, bonusID int64, err error) {
	if employeeID, err = h.Kit.PathID(r, "employeeId"); err != nil {
		return 0, 0, err
	}
	bonusID, err = h.Kit.PathID(r, "bonusId")
	return employeeID, bonusID, err
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	req, err := h.Kit.ParsePage(r, bonus.SortColumns)
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
	employeeID, bonusID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	b, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, bonusID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, r, toResponse(b))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.Kit.PathID(r, "employeeId")
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	b, err := h.decode(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	created, err := h.Service.Create(r.Context(), employeeID, b)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	resp := toResponse(created)
	h.Kit.Record(r, audit.ActionCreate, "bonus", created.ID, nil, resp)
	api.Created(w, r, resp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	employeeID, bonusID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	changes, err := h.decode(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, bonusID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	updated, err := h.Service.Update(r.Context(), employeeID, bonusID, changes)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionUpdate, "bonus", bonusID, toResponse(before), toResponse(updated))
	api.NoContent(w)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	employeeID, bonusID, err := h.ids(r)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByEmployeeAndID(r.Context(), employeeID, bonusID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), employeeID, bonusID); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionDelete, "bonus", bonusID, toResponse(before), nil)
	api.NoContent(w)
}

func (h *Handler) decode(r *http.Request) (bonus.Bonus, error) {
	var req request
	if err := h.Kit.Decode(r, &req); err != nil {
		return bonus.Bonus{}, err
	}
	return req.toModel(), nil
}
