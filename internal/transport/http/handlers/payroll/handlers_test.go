package payrollhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/domain/payroll"
	"hrrecords/internal/transport/http/shared/sharedtest"
)

// fakeService holds salary 10 of employee 1 and its payrolls.
type fakeService struct {
	rows   map[int64]payroll.Payroll
	nextID int64
}

func salaryMissing(employeeID, salaryID int64) error {
	return apperr.NotFound(fmt.Sprintf("Salary with id %d not found for employee with id %d", salaryID, employeeID))
}

func (f *fakeService) salaryOK(employeeID, salaryID int64) bool {
	return employeeID == 1 && salaryID == 10
}

func (f *fakeService) ListBySalary(_ context.Context, employeeID, salaryID int64, req page.Request) (page.Result[payroll.Payroll], error) {
	if !f.salaryOK(employeeID, salaryID) {
		return page.Result[payroll.Payroll]{}, salaryMissing(employeeID, salaryID)
	}
	var out []payroll.Payroll
	for id := int64(1); id <= f.nextID; id++ {
		if p, ok := f.rows[id]; ok {
			out = append(out, p)
		}
	}
	return page.Result[payroll.Payroll]{Items: page.Slice(out, req), Total: len(out)}, nil
}

func (f *fakeService) FindByPath(_ context.Context, employeeID, salaryID, id int64) (payroll.Payroll, error) {
	p, ok := f.rows[id]
	if !ok || !f.salaryOK(employeeID, salaryID) || p.SalaryID != salaryID {
		return payroll.Payroll{}, apperr.NotFound(fmt.Sprintf(
			"Payroll with id %d not found for salary with id %d of employee with id %d", id, salaryID, employeeID))
	}
	return p, nil
}

func (f *fakeService) Create(_ context.Context, employeeID, salaryID int64, p payroll.Payroll) (payroll.Payroll, error) {
	if !f.salaryOK(employeeID, salaryID) {
		return payroll.Payroll{}, salaryMissing(employeeID, salaryID)
	}
	f.nextID++
	p.ID, p.SalaryID = f.nextID, salaryID
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakeService) Update(ctx context.Context, employeeID, salaryID, id int64, changes payroll.Payroll) (payroll.Payroll, error) {
	current, err := f.FindByPath(ctx, employeeID, salaryID, id)
	if err != nil {
		return current, err
	}
	current.CopyFrom(changes)
	f.rows[id] = current
	return current, nil
}

func (f *fakeService) Delete(ctx context.Context, employeeID, salaryID, id int64) error {
	if _, err := f.FindByPath(ctx, employeeID, salaryID, id); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeService) Payslip(ctx context.Context, employeeID, salaryID, id int64, w io.Writer) error {
	p, err := f.FindByPath(ctx, employeeID, salaryID, id)
	if err != nil {
		return err
	}
	return payroll.RenderPayslip(w, payroll.PayslipData{
		PayrollID: p.ID, Name: "John", Surname: "Smith", Email: "john@example.com",
		Salary: decimal.RequireFromString("1500.00"), PaymentDate: p.PaymentDate,
	})
}

func setup(t *testing.T) (*fakeService, http.Handler) {
	t.Helper()
	svc := &fakeService{rows: map[int64]payroll.Payroll{}}
	kit, _ := sharedtest.NewKit(t)
	return svc, sharedtest.Router(NewHandler(svc, kit).RegisterRoutes)
}

func TestPayrollCreateAndList(t *testing.T) {
	_, h := setup(t)

	rec := sharedtest.Do(h, http.MethodPost, "/employees/1/salaries/10/payrolls", `{"paymentDate":"2024-03-25"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"id":1,"salaryId":10,"paymentDate":"2024-03-25"}`, rec.Body.String())

	rec = sharedtest.Do(h, http.MethodGet, "/employees/1/salaries/10/payrolls", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)

	rec = sharedtest.Do(h, http.MethodGet, "/employees/2/salaries/10/payrolls", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Salary with id 10 not found for employee with id 2", sharedtest.ErrorBody(t, rec).Message)
}

func TestPayrollUpdateCopiesPaymentDate(t *testing.T) {
	svc, h := setup(t)
	svc.nextID = 1
	svc.rows[1] = payroll.Payroll{ID: 1, SalaryID: 10, PaymentDate: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)}

	rec := sharedtest.Do(h, http.MethodPut, "/employees/1/salaries/10/payrolls/1", `{"paymentDate":"2024-03-29"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	require.Equal(t, time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC), svc.rows[1].PaymentDate)
}

func TestPayrollWrongChainIsNotFound(t *testing.T) {
	svc, h := setup(t)
	svc.nextID = 1
	svc.rows[1] = payroll.Payroll{ID: 1, SalaryID: 10, PaymentDate: time.Now()}

	for _, target := range []string{
		"/employees/2/salaries/10/payrolls/1",
		"/employees/1/salaries/11/payrolls/1",
		"/employees/1/salaries/10/payrolls/2",
		"/employees/1/salaries/11/payrolls/1/payslip",
	} {
		rec := sharedtest.Do(h, http.MethodGet, target, "")
		require.Equal(t, http.StatusNotFound, rec.Code, target)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"), target)
	}
}

func TestPayslipIsPDF(t *testing.T) {
	svc, h := setup(t)
	svc.nextID = 1
	svc.rows[1] = payroll.Payroll{ID: 1, SalaryID: 10, PaymentDate: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)}

	rec := sharedtest.Do(h, http.MethodGet, "/employees/1/salaries/10/payrolls/1/payslip", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-1.pdf")
	require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestPayrollMalformedIDs(t *testing.T) {
	_, h := setup(t)
	rec := sharedtest.Do(h, http.MethodGet, "/employees/1/salaries/x/payrolls", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, sharedtest.ErrorBody(t, rec).Message, "salaryId")
}
