package salary

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/querier"
)

const selectColumns = `
    SELECT s.id, s.employee_id, s.amount::text, s.start_date, s.end_date, s.current_salary
    FROM salaries s`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (st *Store) ListByEmployee(ctx context.Context, employeeID int64, req page.Request) ([]Salary, error) {
	rows, err := querier.From(ctx, st.DB).Query(ctx, selectColumns+`
    WHERE s.employee_id = $1
    `+SortColumns.OrderBy(req.Sort, "s.id")+`
    LIMIT $2 OFFSET $3
  `, employeeID, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list salaries")
	}
	defer rows.Close()

	out := []Salary{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (st *Store) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	var count int
	err := querier.From(ctx, st.DB).QueryRow(ctx,
		"SELECT COUNT(1) FROM salaries WHERE employee_id = $1", employeeID).Scan(&count)
	return count, err
}

func (st *Store) FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (Salary, error) {
	row := querier.From(ctx, st.DB).QueryRow(ctx, selectColumns+`
    WHERE s.employee_id = $1 AND s.id = $2
  `, employeeID, id)
	s, err := scanSalary(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Salary{}, ErrNotFound
	}
	return s, err
}

func (st *Store) ExistsByEmployeeAndID(ctx context.Context, employeeID, id int64) (bool, error) {
	var exists bool
	err := querier.From(ctx, st.DB).QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM salaries WHERE employee_id = $1 AND id = $2)", employeeID, id).Scan(&exists)
	return exists, err
}

func (st *Store) Create(ctx context.Context, s Salary) (Salary, error) {
	err := querier.From(ctx, st.DB).QueryRow(ctx, `
    INSERT INTO salaries (employee_id, amount, start_date, end_date, current_salary)
    VALUES ($1, $2::numeric, $3, $4, $5)
    RETURNING id
  `, s.EmployeeID, s.Amount.String(), s.StartDate, s.EndDate, s.CurrentSalary).Scan(&s.ID)
	if err != nil {
		return Salary{}, errors.Wrap(err, "insert salary")
	}
	return s, nil
}

func (st *Store) Update(ctx context.Context, s Salary) error {
	tag, err := querier.From(ctx, st.DB).Exec(ctx, `
    UPDATE salaries
    SET amount = $1::numeric,
        start_date = $2,
        end_date = $3,
        current_salary = $4
    WHERE id = $5 AND employee_id = $6
  `, s.Amount.String(), s.StartDate, s.EndDate, s.CurrentSalary, s.ID, s.EmployeeID)
	if err != nil {
		return errors.Wrap(err, "update salary")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the salary and, by cascade, its payrolls.
func (st *Store) Delete(ctx context.Context, id int64) error {
	tag, err := querier.From(ctx, st.DB).Exec(ctx, "DELETE FROM salaries WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "delete salary")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSalary(row pgx.Row) (Salary, error) {
	var s Salary
	var amount string
	if err := row.Scan(&s.ID, &s.EmployeeID, &amount, &s.StartDate, &s.EndDate, &s.CurrentSalary); err != nil {
		return Salary{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Salary{}, errors.Wrap(err, "parse salary amount")
	}
	s.Amount = parsed
	return s, nil
}
