package leave

import (
	"context"
	"errors"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/employee"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/platform/querier"
)

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

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64, req page.Request) (page.Result[Leave], error) {
	var result page.Result[Leave]
	ok, err := s.employees.ExistsByID(ctx, employeeID)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, s.employees.NotFound(employeeID)
	}
	if result.Items, err = s.store.ListByEmployee(ctx, employeeID, req); err != nil {
		return result, err
	}
	result.Total, err = s.store.CountByEmployee(ctx, employeeID)
	return result, err
}

func (s *Service) FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (Leave, error) {
	l, err := s.store.FindByEmployeeAndID(ctx, employeeID, id)
	if errors.Is(err, ErrNotFound) {
		return Leave{}, s.notFound(employeeID, id)
	}
	return l, err
}

func (s *Service) Create(ctx context.Context, employeeID int64, l Leave) (Leave, error) {
	var created Leave
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		emp, err := s.employees.FindByID(ctx, employeeID)
		if err != nil {
			return err
		}
		l.ID = 0
		l.EmployeeID = emp.ID
		created, err = s.store.Create(ctx, l)
		return err
	})
	return created, err
}

func (s *Service) Update(ctx context.Context, employeeID, id int64, changes Leave) (Leave, error) {
	var updated Leave
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.FindByEmployeeAndID(ctx, employeeID, id)
		if err != nil {
			return err
		}
		current.CopyFrom(changes)
		if err := s.store.Update(ctx, current); err != nil {
			if errors.Is(err, ErrNotFound) {
				return s.notFound(employeeID, id)
			}
			return err
		}
		updated = current
		return nil
	})
	return updated, err
}

func (s *Service) Delete(ctx context.Context, employeeID, id int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.FindByEmployeeAndID(ctx, employeeID, id)
		if err != nil {
			return err
		}
		err = s.store.Delete(ctx, current.ID)
		if errors.Is(err, ErrNotFound) {
			return s.notFound(employeeID, id)
		}
		return err
	})
}

func (s *Service) notFound(employeeID, id int64) error {
	return apperr.NotFound(s.messages.Get(messages.LeaveNotFound, map[string]any{
		"EmployeeID": employeeID,
		"LeaveID":    id,
	}))
}
