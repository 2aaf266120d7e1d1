package position

import (
	"context"

	"hrrecords/internal/domain/page"
)

type StoreAPI interface {
	List(ctx context.Context, req page.Request) ([]Position, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (Position, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) (Position, error)
	ListByEmployee(ctx context.Context, employeeID int64, req page.Request) ([]Position, error)
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)
	FindByEmployee(ctx context.Context, employeeID, positionID int64) (Position, error)
	Assign(ctx context.Context, employeeID, positionID int64) error
	Unassign(ctx context.Context, employeeID, positionID int64) error
}
