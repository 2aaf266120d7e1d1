package payroll

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListBySalary(ctx context.Context, salaryID int64, req page.Request) ([]Payroll, error) {
	rows, err := querier.From(ctx, s.DB).Query(ctx, `
    SELECT p.id, p.salary_id, p.payment_date
    FROM payrolls p
    WHERE p.salary_id = $1
    `+SortColumns.OrderBy(req.Sort, "p.id")+`
    LIMIT $2 OFFSET $3
  `, salaryID, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list payrolls")
	}
	defer rows.Close()

	out := []Payroll{}
	for rows.Next() {
		var p Payroll
		if err := rows.Scan(&p.ID, &p.SalaryID, &p.PaymentDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CountBySalary(ctx context.Context, salaryID int64) (int, error) {
	var count int
	err := querier.From(ctx, s.DB).QueryRow(ctx,
		"SELECT COUNT(1) FROM payrolls WHERE salary_id = $1", salaryID).Scan(&count)
	return count, err
}

// FindByPath matches the payroll only when it belongs to the salary and the
// salary belongs to the employee.
func (s *Store) FindByPath(ctx context.Context, employeeID, salaryID, id int64) (Payroll, error) {
	var p Payroll
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    SELECT p.id, p.salary_id, p.payment_date
    FROM payrolls p
    JOIN salaries s ON s.id = p.salary_id
    WHERE s.employee_id = $1 AND s.id = $2 AND p.id = $3
  `, employeeID, salaryID, id).Scan(&p.ID, &p.SalaryID, &p.PaymentDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payroll{}, ErrNotFound
	}
	return p, err
}

func (s *Store) Create(ctx context.Context, p Payroll) (Payroll, error) {
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO payrolls (salary_id, payment_date)
    VALUES ($1, $2)
    RETURNING id
  `, p.SalaryID, p.PaymentDate).Scan(&p.ID)
	if err != nil {
		return Payroll{}, errors.Wrap(err, "insert payroll")
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, p Payroll) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx,
		"UPDATE payrolls SET payment_date = $1 WHERE id = $2 AND salary_id = $3", p.PaymentDate, p.ID, p.SalaryID)
	if err != nil {
		return errors.Wrap(err, "update payroll")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx, "DELETE FROM payrolls WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "delete payroll")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
