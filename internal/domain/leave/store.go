package leave

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/querier"
)

const selectColumns = `
    SELECT l.id, l.employee_id, l.start_date, l.end_date
    FROM leaves l`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64, req page.Request) ([]Leave, error) {
	rows, err := querier.From(ctx, s.DB).Query(ctx, selectColumns+`
    WHERE l.employee_id = $1
    `+SortColumns.OrderBy(req.Sort, "l.id")+`
    LIMIT $2 OFFSET $3
  `, employeeID, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list leaves")
	}
	defer rows.Close()

	out := []Leave{}
	for rows.Next() {
		var l Leave
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	var count int
	err := querier.From(ctx, s.DB).QueryRow(ctx,
		"SELECT COUNT(1) FROM leaves WHERE employee_id = $1", employeeID).Scan(&count)
	return count, err
}

func (s *Store) FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (Leave, error) {
	var l Leave
	err := querier.From(ctx, s.DB).QueryRow(ctx, selectColumns+`
    WHERE l.employee_id = $1 AND l.id = $2
  `, employeeID, id).Scan(&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Leave{}, ErrNotFound
	}
	return l, err
}

func (s *Store) Create(ctx context.Context, l Leave) (Leave, error) {
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO leaves (employee_id, start_date, end_date)
    VALUES ($1, $2, $3)
    RETURNING id
  `, l.EmployeeID, l.StartDate, l.EndDate).Scan(&l.ID)
	if err != nil {
		return Leave{}, errors.Wrap(err, "insert leave")
	}
	return l, nil
}

func (s *Store) Update(ctx context.Context, l Leave) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx, `
    UPDATE leaves
    SET start_date = $1,
        end_date = $2
    WHERE id = $3 AND employee_id = $4
  `, l.StartDate, l.EndDate, l.ID, l.EmployeeID)
	if err != nil {
		return errors.Wrap(err, "update leave")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx, "DELETE FROM leaves WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "delete leave")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
