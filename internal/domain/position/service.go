package position

import (
	"context"
	"errors"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/employee"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/platform/querier"
)

// Employees is the parent lookup used to validate the ownership chain.
type Employees interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (employee.Employee, error)
	NotFound(id int64) error
}

type Service struct {
	store     StoreAPI
	employees Employees
	tx        querier.Transactor
	messages  messages.Resolver
}

func NewService(store StoreAPI, employees Employees, tx querier.Transactor, resolver messages.Resolver) *Service {
	return &Service{store: store, employees: employees, tx: tx, messages: resolver}
}

func (s *Service) List(ctx context.Context, req page.Request) (page.Result[Position], error) {
	items, err := s.store.List(ctx, req)
	if err != nil {
		return page.Result[Position]{}, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return page.Result[Position]{}, err
	}
	return page.Result[Position]{Items: items, Total: total}, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (Position, error) {
	p, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Position{}, apperr.NotFound(s.messages.Get(messages.PositionNotFoundByID, map[string]any{"PositionID": id}))
	}
	return p, err
}

func (s *Service) Create(ctx context.Context, name string) (Position, error) {
	var created Position
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		taken, err := s.store.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if !taken {
			created, err = s.store.Create(ctx, name)
		}
		if taken || errors.Is(err, ErrNameTaken) {
			return apperr.InvalidData(s.messages.Get(messages.PositionNameNotUnique, map[string]any{"Name": name}))
		}
		return err
	})
	return created, err
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64, req page.Request) (page.Result[Position], error) {
	ok, err := s.employees.ExistsByID(ctx, employeeID)
	if err != nil {
		return page.Result[Position]{}, err
	}
	if !ok {
		return page.Result[Position]{}, s.employees.NotFound(employeeID)
	}
	items, err := s.store.ListByEmployee(ctx, employeeID, req)
	if err != nil {
		return page.Result[Position]{}, err
	}
	total, err := s.store.CountByEmployee(ctx, employeeID)
	if err != nil {
		return page.Result[Position]{}, err
	}
	return page.Result[Position]{Items: items, Total: total}, nil
}

func (s *Service) FindByEmployee(ctx context.Context, employeeID, positionID int64) (Position, error) {
	p, err := s.store.FindByEmployee(ctx, employeeID, positionID)
	if errors.Is(err, ErrNotFound) {
		return Position{}, s.notAssigned(employeeID, positionID)
	}
	return p, err
}

// Assign links an existing position to an existing employee and returns the
// position. Assigning an already held position succeeds without change.
func (s *Service) Assign(ctx context.Context, employeeID, positionID int64) (Position, error) {
	var assigned Position
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
			return err
		}
		p, err := s.FindByID(ctx, positionID)
		if err != nil {
			return err
		}
		if err := s.store.Assign(ctx, employeeID, positionID); err != nil {
			return err
		}
		assigned = p
		return nil
	})
	return assigned, err
}

func (s *Service) Unassign(ctx context.Context, employeeID, positionID int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.FindByEmployee(ctx, employeeID, positionID); err != nil {
			return err
		}
		err := s.store.Unassign(ctx, employeeID, positionID)
		if errors.Is(err, ErrNotFound) {
			return s.notAssigned(employeeID, positionID)
		}
		return err
	})
}

func (s *Service) notAssigned(employeeID, positionID int64) error {
	return apperr.NotFound(s.messages.Get(messages.PositionNotFoundForEmployee, map[string]any{
		"EmployeeID": employeeID,
		"PositionID": positionID,
	}))
}
