package payroll

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"hrrecords/internal/platform/querier"
)

func (s *Store) PayslipData(ctx context.Context, employeeID, salaryID, id int64) (PayslipData, error) {
	q := querier.From(ctx, s.DB)

	var data PayslipData
	var salary string
	err := q.QueryRow(ctx, `
    SELECT p.id, e.name, e.surname, e.patronymic, e.email, s.amount::text, p.payment_date
    FROM payrolls p
    JOIN salaries s ON s.id = p.salary_id
    JOIN employees e ON e.id = s.employee_id
    WHERE e.id = $1 AND s.id = $2 AND p.id = $3
  `, employeeID, salaryID, id).Scan(
		&data.PayrollID, &data.Name, &data.Surname, &data.Patronymic, &data.Email, &salary, &data.PaymentDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return PayslipData{}, ErrNotFound
	}
	if err != nil {
		return PayslipData{}, err
	}
	if data.Salary, err = decimal.NewFromString(salary); err != nil {
		return PayslipData{}, errors.Wrap(err, "parse salary amount")
	}

	rows, err := q.Query(ctx, `
    SELECT description, amount::text
    FROM bonuses
    WHERE employee_id = $1
      AND date_trunc('month', payment_date) = date_trunc('month', $2::date)
    ORDER BY payment_date, id
  `, employeeID, data.PaymentDate)
	if err != nil {
		return PayslipData{}, errors.Wrap(err, "payslip bonuses")
	}
	defer rows.Close()
	for rows.Next() {
		var line Line
		var amount string
		if err := rows.Scan(&line.Label, &amount); err != nil {
			return PayslipData{}, err
		}
		if line.Amount, err = decimal.NewFromString(amount); err != nil {
			return PayslipData{}, errors.Wrap(err, "parse bonus amount")
		}
		data.Bonuses = append(data.Bonuses, line)
	}
	return data, rows.Err()
}
