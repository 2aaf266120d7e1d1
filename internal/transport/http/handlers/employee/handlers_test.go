package employeehandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/employee"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/transport/http/shared/sharedtest"
)

type fakeService struct {
	rows     map[int64]employee.Employee
	nextID   int64
	criteria employee.Criteria
	page     page.Request
}

func newFake(seed ...employee.Employee) *fakeService {
	f := &fakeService{rows: map[int64]employee.Employee{}}
	for _, e := range seed {
		f.nextID++
		e.ID = f.nextID
		f.rows[e.ID] = e
	}
	return f
}

func (f *fakeService) notFound(id int64) error {
	return apperr.NotFound(fmt.Sprintf("Employee with id %d not found", id))
}

func (f *fakeService) FindAll(_ context.Context, c employee.Criteria, req page.Request) (page.Result[employee.Employee], error) {
	f.criteria, f.page = c, req
	var all []employee.Employee
	filter := employee.ForCriteria(c)
	for id := int64(1); id <= f.nextID; id++ {
		if e, ok := f.rows[id]; ok && filter.Match(e) {
			all = append(all, e)
		}
	}
	return page.Result[employee.Employee]{Items: page.Slice(all, req), Total: len(all)}, nil
}

func (f *fakeService) FindByID(_ context.Context, id int64) (employee.Employee, error) {
	e, ok := f.rows[id]
	if !ok {
		return employee.Employee{}, f.notFound(id)
	}
	return e, nil
}

func (f *fakeService) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, other := range f.rows {
		if other.Email == e.Email {
			return employee.Employee{}, apperr.InvalidData("Employee with email " + e.Email + " already exists")
		}
	}
	f.nextID++
	e.ID = f.nextID
	f.rows[e.ID] = e
	return e, nil
}

func (f *fakeService) Update(_ context.Context, id int64, changes employee.Employee) (employee.Employee, error) {
	current, ok := f.rows[id]
	if !ok {
		return employee.Employee{}, f.notFound(id)
	}
	current.CopyFrom(changes)
	f.rows[id] = current
	return current, nil
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return f.notFound(id)
	}
	delete(f.rows, id)
	return nil
}

func john() employee.Employee {
	return employee.Employee{
		Name: "John", Surname: "Smith", Patronymic: "Paul",
		Email: "john@example.com", PhoneNumber: "+375291234567",
		DateOfBirth:      time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		DateOfEmployment: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		Gender:           employee.GenderMale,
		Positions:        []string{"Engineer"},
	}
}

const validBody = `{
  "name":"Anna","surname":"Ivanova","patronymic":"Petrovna",
  "email":"anna@example.com","phoneNumber":"80441234567",
  "dateOfBirth":"1995-03-08","dateOfEmployment":"2021-09-01","gender":"FEMALE"
}`

func setup(t *testing.T, seed ...employee.Employee) (*fakeService, *sharedtest.Auditor, http.Handler) {
	t.Helper()
	svc := newFake(seed...)
	kit, auditor := sharedtest.NewKit(t)
	return svc, auditor, sharedtest.Router(NewHandler(svc, kit).RegisterRoutes)
}

func TestListPassesCriteriaAndPage(t *testing.T) {
	svc, _, h := setup(t, john())

	rec := sharedtest.Do(h, http.MethodGet, "/employees?name=Jo&gender=MALE&dateOfBirth=1990-05-01&positionName=Engineer&page=0&size=5&sort=surname,desc", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "1", rec.Header().Get("X-Total-Count"))

	require.Equal(t, "Jo", svc.criteria.Name)
	require.Equal(t, employee.GenderMale, svc.criteria.Gender)
	require.Equal(t, "Engineer", svc.criteria.PositionName)
	require.NotNil(t, svc.criteria.DateOfBirth)
	require.Nil(t, svc.criteria.DateOfEmployment)
	require.Equal(t, 5, svc.page.Size)
	require.Equal(t, []page.Order{{Field: "surname", Desc: true}}, svc.page.Sort)

	var items []response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "1990-05-01", items[0].DateOfBirth)
	require.Equal(t, []string{"Engineer"}, items[0].Positions)
}

func TestListRejectsBadQuery(t *testing.T) {
	_, _, h := setup(t)
	for _, target := range []string{
		"/employees?gender=OTHER",
		"/employees?dateOfBirth=yesterday",
		"/employees?sort=salary",
		"/employees?page=-1",
	} {
		rec := sharedtest.Do(h, http.MethodGet, target, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	_, _, h := setup(t)
	rec := sharedtest.Do(h, http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
	require.Equal(t, "0", rec.Header().Get("X-Total-Count"))
}

func TestGetNotFoundUsesErrorBody(t *testing.T) {
	_, _, h := setup(t)
	rec := sharedtest.Do(h, http.MethodGet, "/employees/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := sharedtest.ErrorBody(t, rec)
	require.Equal(t, "Employee with id 42 not found", body.Message)
	require.Equal(t, "http://example.com/employees/42", body.ErrorURL)
	require.False(t, body.ErrorTime.IsZero())
}

func TestGetRejectsMalformedID(t *testing.T) {
	_, _, h := setup(t)
	for _, id := range []string{"abc", "0", "-3"} {
		rec := sharedtest.Do(h, http.MethodGet, "/employees/"+id, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestCreateReturns201AndAudits(t *testing.T) {
	_, auditor, h := setup(t)
	rec := sharedtest.Do(h, http.MethodPost, "/employees", validBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "FEMALE", created.Gender)
	require.Equal(t, "2021-09-01", created.DateOfEmployment)
	require.Equal(t, []string{}, created.Positions)

	events := auditor.Events()
	require.Len(t, events, 1)
	require.Equal(t, audit.ActionCreate, events[0].Action)
	require.Equal(t, "employee", events[0].EntityType)
	require.Equal(t, "1", events[0].EntityID)
}

func TestCreateValidation(t *testing.T) {
	_, _, h := setup(t)
	rec := sharedtest.Do(h, http.MethodPost, "/employees", `{"name":"","email":"bad","phoneNumber":"123","dateOfBirth":"08.03.1995","gender":"X"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	reasons := sharedtest.FieldReasons(t, rec)
	require.Equal(t, "is required", reasons["name"])
	require.Equal(t, "must be a valid email address", reasons["email"])
	require.Equal(t, "must be a phone number like +375291234567", reasons["phoneNumber"])
	require.Equal(t, "must be a date in YYYY-MM-DD format", reasons["dateOfBirth"])
	require.Equal(t, "is required", reasons["dateOfEmployment"])
	require.Equal(t, "must be one of MALE FEMALE", reasons["gender"])
}

func TestCreateDuplicateEmail(t *testing.T) {
	_, _, h := setup(t)
	require.Equal(t, http.StatusCreated, sharedtest.Do(h, http.MethodPost, "/employees", validBody).Code)

	rec := sharedtest.Do(h, http.MethodPost, "/employees", validBody)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Employee with email anna@example.com already exists", sharedtest.ErrorBody(t, rec).Message)
}

func TestUpdateReturns204(t *testing.T) {
	svc, auditor, h := setup(t, john())
	rec := sharedtest.Do(h, http.MethodPut, "/employees/1", validBody)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	require.Empty(t, rec.Body.String())

	require.Equal(t, "Anna", svc.rows[1].Name)
	require.Equal(t, []string{"Engineer"}, svc.rows[1].Positions)

	events := auditor.Events()
	require.Len(t, events, 1)
	require.Equal(t, "John", events[0].Before.(response).Name)
	require.Equal(t, "Anna", events[0].After.(response).Name)
}

func TestUpdateMissingIs404(t *testing.T) {
	_, auditor, h := setup(t)
	rec := sharedtest.Do(h, http.MethodPut, "/employees/9", validBody)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, auditor.Events())
}

func TestDelete(t *testing.T) {
	svc, auditor, h := setup(t, john())
	require.Equal(t, http.StatusNoContent, sharedtest.Do(h, http.MethodDelete, "/employees/1", "").Code)
	require.Empty(t, svc.rows)
	require.Equal(t, audit.ActionDelete, auditor.Events()[0].Action)

	require.Equal(t, http.StatusNotFound, sharedtest.Do(h, http.MethodDelete, "/employees/1", "").Code)
}
