package payroll

import (
	"context"
	"errors"
	"io"

	"hrrecords/internal/domain/apperr"
	"hrrecords/internal/domain/page"
	"hrrecords/internal/domain/salary"
	"hrrecords/internal/platform/messages"
	"hrrecords/internal/platform/querier"
)

// Salaries is the parent lookup for payrolls. Both ids of the salary must match.
type Salaries interface {
	ExistsByEmployeeAndID(ctx context.Context, employeeID, id int64) (bool, error)
	FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (salary.Salary, error)
	NotFound(employeeID, id int64) error
}

type Service struct {
	store    StoreAPI
	salaries Salaries
	tx       querier.Transactor
	messages messages.Resolver
}

func NewService(store StoreAPI, salaries Salaries, tx querier.Transactor, resolver messages.Resolver) *Service {
	return &Service{store: store, salaries: salaries, tx: tx, messages: resolver}
}

func (s *Service) ListBySalary(ctx context.Context, employeeID, salaryID int64, req page.Request) (page.Result[Payroll], error) {
	var result page.Result[Payroll]
	ok, err := s.salaries.ExistsByEmployeeAndID(ctx, employeeID, salaryID)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, s.salaries.NotFound(employeeID, salaryID)
	}
	if result.Items, err = s.store.ListBySalary(ctx, salaryID, req); err != nil {
		return result, err
	}
	result.Total, err = s.store.CountBySalary(ctx, salaryID)
	return result, err
}

func (s *Service) FindByPath(ctx context.Context, employeeID, salaryID, id int64) (Payroll, error) {
	p, err := s.store.FindByPath(ctx, employeeID, salaryID, id)
	if errors.Is(err, ErrNotFound) {
		return Payroll{}, s.notFound(employeeID, salaryID, id)
	}
	return p, err
}

func (s *Service) Create(ctx context.Context, employeeID, salaryID int64, p Payroll) (Payroll, error) {
	var created Payroll
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		sal, err := s.salaries.FindByEmployeeAndID(ctx, employeeID, salaryID)
		if err != nil {
			return err
		}
		p.ID = 0
		p.SalaryID = sal.ID
		created, err = s.store.Create(ctx, p)
		return err
	})
	return created, err
}

func (s *Service) Update(ctx context.Context, employeeID, salaryID, id int64, changes Payroll) (Payroll, error) {
	var updated Payroll
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.FindByPath(ctx, employeeID, salaryID, id)
		if err != nil {
			return err
		}
		current.CopyFrom(changes)
		if err := s.store.Update(ctx, current); err != nil {
			if errors.Is(err, ErrNotFound) {
				return s.notFound(employeeID, salaryID, id)
			}
			return err
		}
		updated = current
		return nil
	})
	return updated, err
}

func (s *Service) Delete(ctx context.Context, employeeID, salaryID, id int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		current, err := s.FindByPath(ctx, employeeID, salaryID, id)
		if err != nil {
			return err
		}
		err = s.store.Delete(ctx, current.ID)
		if errors.Is(err, ErrNotFound) {
			return s.notFound(employeeID, salaryID, id)
		}
		return err
	})
}

// Payslip renders the PDF payslip of one payroll to w. Nothing is written
// when the payroll is not found at the given path.
func (s *Service) Payslip(ctx context.Context, employeeID, salaryID, id int64, w io.Writer) error {
	data, err := s.store.PayslipData(ctx, employeeID, salaryID, id)
	if errors.Is(err, ErrNotFound) {
		return s.notFound(employeeID, salaryID, id)
	}
	if err != nil {
		return err
	}
	return RenderPayslip(w, data)
}

func (s *Service) notFound(employeeID, salaryID, id int64) error {
	return apperr.NotFound(s.messages.Get(messages.PayrollNotFound, map[string]any{
		"EmployeeID": employeeID,
		"SalaryID":   salaryID,
		"PayrollID":  id,
	}))
}
