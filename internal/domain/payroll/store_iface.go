package payroll

import (
	"context"

	"hrrecords/internal/domain/page"
)

type StoreAPI interface {
	ListBySalary(ctx context.Context, salaryID int64, req page.Request) ([]Payroll, error)
	CountBySalary(ctx context.Context, salaryID int64) (int, error)
	FindByPath(ctx context.Context, employeeID, salaryID, id int64) (Payroll, error)
	Create(ctx context.Context, p Payroll) (Payroll, error)
	Update(ctx context.Context, p Payroll) error
	Delete(ctx context.Context, id int64) error
	PayslipData(ctx context.Context, employeeID, salaryID, id int64) (PayslipData, error)
}
