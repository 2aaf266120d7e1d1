package bonus

import (
	"context"

	"hrrecords/internal/domain/page"
)

type StoreAPI interface {
	ListByEmployee(ctx context.Context, employeeID int64, req page.Request) ([]Bonus, error)
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)
	FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (Bonus, error)
	Create(ctx context.Context, b Bonus) (Bonus, error)
	Update(ctx context.Context, b Bonus) error
	Delete(ctx context.Context, id int64) error
}
