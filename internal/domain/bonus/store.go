package bonus

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/querier"
)

const selectColumns = `
    SELECT b.id, b.employee_id, b.amount::text, b.description, b.payment_date
    FROM bonuses b`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64, req page.Request) ([]Bonus, error) {
	rows, err := querier.From(ctx, s.DB).Query(ctx, selectColumns+`
    WHERE b.employee_id = $1
    `+SortColumns.OrderBy(req.Sort, "b.id")+`
    LIMIT $2 OFFSET $3
  `, employeeID, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list bonuses")
	}
	defer rows.Close()

	out := []Bonus{}
	for rows.Next() {
		b, err := scanBonus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	var count int
	err := querier.From(ctx, s.DB).QueryRow(ctx,
		"SELECT COUNT(1) FROM bonuses WHERE employee_id = $1", employeeID).Scan(&count)
	return count, err
}

func (s *Store) FindByEmployeeAndID(ctx context.Context, employeeID, id int64) (Bonus, error) {
	b, err := scanBonus(querier.From(ctx, s.DB).QueryRow(ctx, selectColumns+`
    WHERE b.employee_id = $1 AND b.id = $2
  `, employeeID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Bonus{}, ErrNotFound
	}
	return b, err
}

func (s *Store) Create(ctx context.Context, b Bonus) (Bonus, error) {
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO bonuses (employee_id, amount, description, payment_date)
    VALUES ($1, $2::numeric, $3, $4)
    RETURNING id
  `, b.EmployeeID, b.Amount.String(), b.Description, b.PaymentDate).Scan(&b.ID)
	if err != nil {
		return Bonus{}, errors.Wrap(err, "insert bonus")
	}
	return b, nil
}

func (s *Store) Update(ctx context.Context, b Bonus) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx, `
    UPDATE bonuses
    SET amount = $1::numeric,
        description = $2,
        payment_date = $3
    WHERE id = $4 AND employee_id = $5
  `, b.Amount.String(), b.Description, b.PaymentDate, b.ID, b.EmployeeID)
	if err != nil {
		return errors.Wrap(err, "update bonus")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx, "DELETE FROM bonuses WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "delete bonus")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBonus(row pgx.Row) (Bonus, error) {
	var b Bonus
	var amount string
	if err := row.Scan(&b.ID, &b.EmployeeID, &amount, &b.Description, &b.PaymentDate); err != nil {
		return Bonus{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Bonus{}, errors.Wrap(err, "parse bonus amount")
	}
	b.Amount = parsed
	return b, nil
}
