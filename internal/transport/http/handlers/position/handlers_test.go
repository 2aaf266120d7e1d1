package positionhandler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/domain/position"
	"hrrecords/internal/transport/http/shared/sharedtest"
)

type link struct{ employeeID, positionID int64 }

// fakeService knows employee 1 only.
type fakeService struct {
	positions []position.Position
	links     map[link]bool
}

func (f *fakeService) List(_ context.Context, req page.Request) (page.Result[position.Position], error) {
	return page.Result[position.Position]{Items: page.Slice(f.positions, req), Total: len(f.positions)}, nil
}

func (f *fakeService) FindByID(_ context.Context, id int64) (position.Position, error) {
	for _, p := range f.positions {
		if p.ID == id {
			return p, nil
		}
	}
	return position.Position{}, apperr.NotFound(fmt.Sprintf("Position with id %d not found", id))
}

func (f *fakeService) Create(_ context.Context, name string) (position.Position, error) {
	if slices.ContainsFunc(f.positions, func(p position.Position) bool { return p.Name == name }) {
		return position.Position{}, apperr.InvalidData("Position " + name + " already exists")
	}
	p := position.Position{ID: int64(len(f.positions) + 1), Name: name}
	f.positions = append(f.positions, p)
	return p, nil
}

func (f *fakeService) ListByEmployee(_ context.Context, employeeID int64, req page.Request) (page.Result[position.Position], error) {
	if employeeID != 1 {
		return page.Result[position.Position]{}, apperr.NotFound(fmt.Sprintf("Employee with id %d not found", employeeID))
	}
	var out []position.Position
	for _, p := range f.positions {
		if f.links[link{employeeID, p.ID}] {
			out = append(out, p)
		}
	}
	return page.Result[position.Position]{Items: page.Slice(out, req), Total: len(out)}, nil
}

func (f *fakeService) FindByEmployee(ctx context.Context, employeeID, positionID int64) (position.Position, error) {
	if !f.links[link{employeeID, positionID}] {
		return position.Position{}, apperr.NotFound(fmt.Sprintf(
			"Position with id %d not found for employee with id %d", positionID, employeeID))
	}
	return f.FindByID(ctx, positionID)
}

func (f *fakeService) Assign(ctx context.Context, employeeID, positionID int64) (position.Position, error) {
	if employeeID != 1 {
		return position.Position{}, apperr.NotFound(fmt.Sprintf("Employee with id %d not found", employeeID))
	}
	p, err := f.FindByID(ctx, positionID)
	if err != nil {
		return p, err
	}
	f.links[link{employeeID, positionID}] = true
	return p, nil
}

func (f *fakeService) Unassign(ctx context.Context, employeeID, positionID int64) error {
	if _, err := f.FindByEmployee(ctx, employeeID, positionID); err != nil {
		return err
	}
	delete(f.links, link{employeeID, positionID})
	return nil
}

func setup(t *testing.T) (*fakeService, *sharedtest.Auditor, http.Handler) {
	t.Helper()
	svc := &fakeService{links: map[link]bool{}}
	kit, auditor := sharedtest.NewKit(t)
	return svc, auditor, sharedtest.Router(NewHandler(svc, kit).RegisterRoutes)
}

func TestCreateAndListPositions(t *testing.T) {
	_, _, h := setup(t)

	rec := sharedtest.Do(h, http.MethodPost, "/positions", `{"name":"Engineer"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"id":1,"name":"Engineer"}`, rec.Body.String())

	rec = sharedtest.Do(h, http.MethodPost, "/positions", `{"name":"Engineer"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = sharedtest.Do(h, http.MethodPost, "/positions", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "is required", sharedtest.FieldReasons(t, rec)["name"])

	rec = sharedtest.Do(h, http.MethodGet, "/positions?sort=name", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"id":1,"name":"Engineer"}]`, rec.Body.String())

	require.Equal(t, http.StatusNotFound, sharedtest.Do(h, http.MethodGet, "/positions/9", "").Code)
}

func TestAssignIsIdempotent(t *testing.T) {
	svc, auditor, h := setup(t)
	svc.positions = []position.Position{{ID: 1, Name: "Engineer"}, {ID: 2, Name: "Lead"}}

	for range 2 {
		rec := sharedtest.Do(h, http.MethodPut, "/employees/1/positions/2", "")
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	}
	require.Len(t, svc.links, 1)

	rec := sharedtest.Do(h, http.MethodGet, "/employees/1/positions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"id":2,"name":"Lead"}]`, rec.Body.String())

	rec = sharedtest.Do(h, http.MethodGet, "/employees/1/positions/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Position with id 1 not found for employee with id 1", sharedtest.ErrorBody(t, rec).Message)

	require.Equal(t, audit.ActionUpdate, auditor.Events()[0].Action)
	require.Equal(t, "employee_position", auditor.Events()[0].EntityType)
}

func TestAssignMissingParents(t *testing.T) {
	svc, _, h := setup(t)
	svc.positions = []position.Position{{ID: 1, Name: "Engineer"}}

	require.Equal(t, http.StatusNotFound, sharedtest.Do(h, http.MethodPut, "/employees/5/positions/1", "").Code)
	require.Equal(t, http.StatusNotFound, sharedtest.Do(h, http.MethodPut, "/employees/1/positions/5", "").Code)
	require.Empty(t, svc.links)
}

func TestUnassign(t *testing.T) {
	svc, _, h := setup(t)
	svc.positions = []position.Position{{ID: 1, Name: "Engineer"}}
	svc.links[link{1, 1}] = true

	require.Equal(t, http.StatusNoContent, sharedtest.Do(h, http.MethodDelete, "/employees/1/positions/1", "").Code)
	require.Equal(t, http.StatusNotFound, sharedtest.Do(h, http.MethodDelete, "/employees/1/positions/1", "").Code)
}
