package salary

import (
	"context"

	"hrrecords/internal/domain/page"
)

type StoreAPI interface {
	ListByEmployee(ctx context.Context, employeeID int64, req page.Request) ([]Salary, error)
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)
	FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (Salary, error)
	ExistsByEmployeeAndID(ctx context.Context, employeeID, id int64) (bool, error)
	Create(ctx context.Context, s Salary) (Salary, error)
	Update(ctx context.Context, s Salary) error
	Delete(ctx context.Context, id int64) error
}
