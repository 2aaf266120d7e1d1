package salary

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

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64, req page.Request) (page.Result[Salary], error) {
	var result page.Result[Salary]
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

// FindByEmployeeAndID matches on both ids; a salary of another employee is
// reported exactly like a missing one.
func (s *Service) FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (Salary, error) {
	sal, err := s.store.FindByEmployeeAndID(ctx, employeeID, id)
	if errors.Is(err, ErrNotFound) {
		return Salary{}, s.NotFound(employeeID, id)
	}
	return sal, err
}

func (s *Service) ExistsByEmployeeAndID(ctx context.Context, employeeID, id int64) (bool, error) {
	return s.store.ExistsByEmployeeAndID(ctx, employeeID, id)
}

func (s *Service) NotFound(employeeID, id int64) error {
	return apperr.NotFound(s.messages.Get(messages.SalaryNotFound, map[string]any{
		"EmployeeID": employeeID,
		"SalaryID":   id,
	}))
}

func (s *Service) Create(ctx context.Context, employeeID int64, sal Salary) (Salary, error) {
	var created Salary
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		emp, err := s.employees.FindByID(ctx, employeeID)
		if err != nil {
			return err
		}
		sal.ID = 0
		sal.EmployeeID = emp.ID
		created, err = s.store.Create(ctx, sal)
		return err
	})
	return created, err
}

func (s *Service) Update(ctx context.Context, employeeID, id int64, changes Salary) (Salary, error) {
	var updated Salary
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.FindByEmployeeAndID(ctx, employeeID, id)
		if err != nil {
			return err
		}
		current.CopyFrom(changes)
		if err := s.store.Update(ctx, current); err != nil {
			if errors.Is(err, ErrNotFound) {
				return s.NotFound(employeeID, id)
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
			return s.NotFound(employeeID, id)
		}
		return err
	})
}
