package bonushandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/bonus"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/transport/http/shared/sharedtest"
)

type fakeService struct {
	rows   map[int64]bonus.Bonus
	nextID int64
}

func (f *fakeService) missing(employeeID, id int64) error {
	return apperr.NotFound(fmt.Sprintf("Bonus with id %d not found for employee with id %d", id, employeeID))
}

func (f *fakeService) ListByEmployee(_ context.Context, employeeID int64, req page.Request) (page.Result[bonus.Bonus], error) {
	var out []bonus.Bonus
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.rows[id]; ok && b.EmployeeID == employeeID {
			out = append(out, b)
		}
	}
	return page.Result[bonus.Bonus]{Items: page.Slice(out, req), Total: len(out)}, nil
}

func (f *fakeService) FindByEmployeeAndID(_ context.Context, employeeID, id int64) (bonus.Bonus, error) {
	b, ok := f.rows[id]
	if !ok || b.EmployeeID != employeeID {
		return bonus.Bonus{}, f.missing(employeeID, id)
	}
	return b, nil
}

func (f *fakeService) Create(_ context.Context, employeeID int64, b bonus.Bonus) (bonus.Bonus, error) {
	f.nextID++
	b.ID, b.EmployeeID = f.nextID, employeeID
	f.rows[b.ID] = b
	return b, nil
}

func (f *fakeService) Update(ctx context.Context, employeeID, id int64, changes bonus.Bonus) (bonus.Bonus, error) {
	current, err := f.FindByEmployeeAndID(ctx, employeeID, id)
	if err != nil {
		return current, err
	}
	current.CopyFrom(changes)
	f.rows[id] = current
	return current, nil
}

func (f *fakeService) Delete(ctx context.Context, employeeID, id int64) error {
	if _, err := f.FindByEmployeeAndID(ctx, employeeID, id); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

func setup(t *testing.T) (*fakeService, *sharedtest.Auditor, http.Handler) {
	t.Helper()
	svc := &fakeService{rows: map[int64]bonus.Bonus{}}
	kit, auditor := sharedtest.NewKit(t)
	return svc, auditor, sharedtest.Router(NewHandler(svc, kit).RegisterRoutes)
}

func TestBonusLifecycle(t *testing.T) {
	svc, auditor, h := setup(t)

	rec := sharedtest.Do(h, http.MethodPost, "/employees/3/bonuses", `{"amount":"250.75","description":"Q2 results","paymentDate":"2024-07-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, int64(3), created.EmployeeID)
	require.Equal(t, "2024-07-10", created.PaymentDate)

	rec = sharedtest.Do(h, http.MethodGet, "/employees/3/bonuses?sort=paymentDate,desc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1", rec.Header().Get("X-Total-Count"))

	rec = sharedtest.Do(h, http.MethodPut, "/employees/3/bonuses/1", `{"amount":300,"description":"Q2 results, revised","paymentDate":"2024-07-15"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	require.True(t, svc.rows[1].Amount.Equal(decimal.NewFromInt(300)))
	require.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), svc.rows[1].PaymentDate)

	require.Equal(t, http.StatusNoContent, sharedtest.Do(h, http.MethodDelete, "/employees/3/bonuses/1", "").Code)

	var actions []string
	for _, evt := range auditor.Events() {
		require.Equal(t, "bonus", evt.EntityType)
		actions = append(actions, evt.Action)
	}
	require.Equal(t, []string{audit.ActionCreate, audit.ActionUpdate, audit.ActionDelete}, actions)
}

func TestBonusOfAnotherEmployeeIsNotFound(t *testing.T) {
	svc, _, h := setup(t)
	svc.nextID = 1
	svc.rows[1] = bonus.Bonus{ID: 1, EmployeeID: 1, Amount: decimal.NewFromInt(10), Description: "x", PaymentDate: time.Now()}

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := sharedtest.Do(h, method, "/employees/2/bonuses/1", "")
		require.Equal(t, http.StatusNotFound, rec.Code, method)
		require.Equal(t, "Bonus with id 1 not found for employee with id 2", sharedtest.ErrorBody(t, rec).Message)
	}
	require.Len(t, svc.rows, 1)
}

func TestBonusValidation(t *testing.T) {
	_, _, h := setup(t)
	rec := sharedtest.Do(h, http.MethodPost, "/employees/1/bonuses", `{"amount":0,"paymentDate":"2024-13-01"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	reasons := sharedtest.FieldReasons(t, rec)
	require.Equal(t, "is required", reasons["amount"])
	require.Equal(t, "is required", reasons["description"])
	require.Equal(t, "must be a date in YYYY-MM-DD format", reasons["paymentDate"])
}
