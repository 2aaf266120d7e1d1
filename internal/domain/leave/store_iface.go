package leave

import (
	"context"

	"hrrecords/internal/domain/page"
)

type StoreAPI interface {
	ListByEmployee(ctx context.Context, employeeID int64, req page.Request) ([]Leave, error)
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)
	FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (Leave, error)
	Create(ctx context.Context, l Leave) (Leave, error)
	Update(ctx context.Context, l Leave) error
	Delete(ctx context.Context, id int64) error
}
