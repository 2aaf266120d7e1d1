package employee

import (
	"context"

	"hrrecords/internal/domain/page"
)

type StoreAPI interface {
	List(ctx context.Context, filter Filter, req page.Request) ([]Employee, error)
	Count(ctx context.Context, filter Filter) (int, error)
	FindByID(ctx context.Context, id int64) (Employee, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phone string, excludeID int64) (bool, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id int64) error
}
