package payrollhandler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/domain/payroll"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/shared"
)

type Service interface {
	ListBySalary(ctx context.Context, employeeID, salaryID int64, req page.Request) (page.Result[payroll.Payroll], error)
	FindByPath(ctx context.Context, employeeID, salaryID, id int64) (payroll.Payroll, error)
	Create(ctx context.Context, employeeID, salaryID int64, p payroll.Payroll) (payroll.Payroll, error)
	Update(ctx context.Context, employeeID, salaryID, id int64, changes payroll.Payroll) (payroll.Payroll, error)
	Delete(ctx context.Context, employeeID, salaryID, id int64) error
	Payslip(ctx context.Context, employeeID, salaryID, id int64, w io.Writer) error
}

type Handler struct {
	Service Service
	Kit     *shared.Kit
}

func NewHandler(svc Service, kit *shared.Kit) *Handler {
	return &Handler{Service: svc, Kit: kit}
}

const base = "/employees/{employeeId}/salaries/{salaryId}/payrolls"

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get(base, h.handleList)
	r.Post(base, h.handleCreate)
	r.Get(base+"/{payrollId}", h.handleGet)
	r.Put(base+"/{payrollId}", h.handleUpdate)
	r.Delete(base+"/{payrollId}", h.handleDelete)
	r.Get(base+"/{payrollId}/payslip", h.handlePayslip)
}

// path holds the ancestor chain of a payroll request.
type path struct {
	employeeID int64
	salaryID   int64
	payrollID  int64
}

func (h *Handler) parsePath(r *http.Request, withPayroll bool) (path, error) {
	var p path
	var err error
	if p.employeeID, err = h.Kit.PathID(r, "employeeId"); err != nil {
		return p, err
	}
	if p.salaryID, err = h.Kit.PathID(r, "salaryId"); err != nil {
		return p, err
	}
	if withPayroll {
		p.payrollID, err = h.Kit.PathID(r, "payrollId")
	}
	return p, err
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePath(r, false)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	req, err := h.Kit.ParsePage(r, payroll.SortColumns)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	result, err := h.Service.ListBySalary(r.Context(), p.employeeID, p.salaryID, req)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	shared.WritePage(w, r, result, toResponse)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePath(r, true)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	found, err := h.Service.FindByPath(r.Context(), p.employeeID, p.salaryID, p.payrollID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, r, toResponse(found))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePath(r, false)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	var req request
	if err := h.Kit.Decode(r, &req); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	created, err := h.Service.Create(r.Context(), p.employeeID, p.salaryID, req.toModel())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	resp := toResponse(created)
	h.Kit.Record(r, audit.ActionCreate, "payroll", created.ID, nil, resp)
	api.Created(w, r, resp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePath(r, true)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	var req request
	if err := h.Kit.Decode(r, &req); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByPath(r.Context(), p.employeeID, p.salaryID, p.payrollID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	updated, err := h.Service.Update(r.Context(), p.employeeID, p.salaryID, p.payrollID, req.toModel())
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionUpdate, "payroll", p.payrollID, toResponse(before), toResponse(updated))
	api.NoContent(w)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePath(r, true)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	before, err := h.Service.FindByPath(r.Context(), p.employeeID, p.salaryID, p.payrollID)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), p.employeeID, p.salaryID, p.payrollID); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	h.Kit.Record(r, audit.ActionDelete, "payroll", p.payrollID, toResponse(before), nil)
	api.NoContent(w)
}

// handlePayslip renders into memory first so a failure still yields a JSON error.
func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePath(r, true)
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := h.Service.Payslip(r.Context(), p.employeeID, p.salaryID, p.payrollID, &buf); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%d.pdf"`, p.payrollID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
