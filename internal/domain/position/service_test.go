package position

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/employee"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/platform/querier"
)

type fakeEmployees map[int64]bool

func (f fakeEmployees) ExistsByID(_ context.Context, id int64) (bool, error) {
	return f[id], nil
}

func (f fakeEmployees) FindByID(_ context.Context, id int64) (employee.Employee, error) {
	if !f[id] {
		return employee.Employee{}, f.NotFound(id)
	}
	return employee.Employee{ID: id}, nil
}

func (f fakeEmployees) NotFound(id int64) error {
	return apperr.NotFound(fmt.Sprintf("employee %d", id))
}

type link struct{ employeeID, positionID int64 }

type memStore struct {
	nextID    int64
	positions map[int64]Position
	links     map[link]bool
}

func (m *memStore) sorted(keep func(Position) bool) []Position {
	out := []Position{}
	for _, p := range m.positions {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) List(_ context.Context, req page.Request) ([]Position, error) {
	return page.Slice(m.sorted(func(Position) bool { return true }), req), nil
}

func (m *memStore) Count(context.Context) (int, error) { return len(m.positions), nil }

func (m *memStore) FindByID(_ context.Context, id int64) (Position, error) {
	p, ok := m.positions[id]
	if !ok {
		return Position{}, ErrNotFound
	}
	return p, nil
}

func (m *memStore) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, p := range m.positions {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Create(_ context.Context, name string) (Position, error) {
	m.nextID++
	p := Position{ID: m.nextID, Name: name}
	m.positions[p.ID] = p
	return p, nil
}

func (m *memStore) ListByEmployee(_ context.Context, employeeID int64, req page.Request) ([]Position, error) {
	return page.Slice(m.sorted(func(p Position) bool { return m.links[link{employeeID, p.ID}] }), req), nil
}

func (m *memStore) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	items, _ := m.ListByEmployee(ctx, employeeID, page.Request{})
	return len(items), nil
}

func (m *memStore) FindByEmployee(_ context.Context, employeeID, positionID int64) (Position, error) {
	if !m.links[link{employeeID, positionID}] {
		return Position{}, ErrNotFound
	}
	return m.positions[positionID], nil
}

func (m *memStore) Assign(_ context.Context, employeeID, positionID int64) error {
	m.links[link{employeeID, positionID}] = true
	return nil
}

func (m *memStore) Unassign(_ context.Context, employeeID, positionID int64) error {
	if !m.links[link{employeeID, positionID}] {
		return ErrNotFound
	}
	delete(m.links, link{employeeID, positionID})
	return nil
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	catalog, err := messages.New("en")
	require.NoError(t, err)
	store := &memStore{positions: map[int64]Position{}, links: map[link]bool{}}
	return NewService(store, fakeEmployees{1: true, 2: true}, querier.NoTx{}, catalog), store
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "Engineer")
	require.NoError(t, err)
	require.NotZero(t, p.ID)

	_, err = svc.Create(ctx, "Engineer")
	require.True(t, apperr.IsInvalidData(err))
	require.EqualError(t, err, "Position with name Engineer already exists")

	result, err := svc.List(ctx, page.Request{Size: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
}

func TestAssignResolvesEmployeeAndPosition(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Engineer")
	require.NoError(t, err)

	_, err = svc.Assign(ctx, 9, p.ID)
	require.True(t, apperr.IsNotFound(err))

	_, err = svc.Assign(ctx, 1, 77)
	require.EqualError(t, err, "Position with id 77 not found")

	got, err := svc.Assign(ctx, 1, p.ID)
	require.NoError(t, err)
	require.Equal(t, p, got)

	_, err = svc.Assign(ctx, 1, p.ID)
	require.NoError(t, err)

	result, err := svc.ListByEmployee(ctx, 1, page.Request{Size: 10})
	require.NoError(t, err)
	require.Equal(t, []Position{p}, result.Items)
	require.Equal(t, 1, result.Total)
}

func TestPositionOfAnotherEmployeeIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, "Engineer")
	require.NoError(t, err)
	_, err = svc.Assign(ctx, 1, p.ID)
	require.NoError(t, err)

	_, err = svc.FindByEmployee(ctx, 2, p.ID)
	require.EqualError(t, err, fmt.Sprintf("Position with id %d is not assigned to employee with id 2", p.ID))

	require.NoError(t, svc.Unassign(ctx, 1, p.ID))
	require.True(t, apperr.IsNotFound(svc.Unassign(ctx, 1, p.ID)))
}

func TestListByMissingEmployee(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ListByEmployee(context.Background(), 42, page.Request{Size: 10})
	require.True(t, apperr.IsNotFound(err))
}
