package employee

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/querier"
)

const selectColumns = `
    SELECT e.id, e.name, e.surname, e.patronymic, e.email, e.phone_number,
           e.date_of_birth, e.date_of_employment, e.gender,
           COALESCE((
             SELECT array_agg(p.name ORDER BY p.name)
             FROM employee_positions ep
             JOIN positions p ON p.id = ep.position_id
             WHERE ep.employee_id = e.id
           ), '{}') AS positions
    FROM employees e`

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, filter Filter, req page.Request) ([]Employee, error) {
	args := make([]any, 0, len(filter)+2)
	where := filter.Where(&args)
	args = append(args, req.Limit(), req.Offset())
	query := fmt.Sprintf("%s\n    %s\n    %s\n    LIMIT $%d OFFSET $%d",
		selectColumns, where, SortColumns.OrderBy(req.Sort, "e.id"), len(args)-1, len(args))

	rows, err := querier.From(ctx, s.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list employees")
	}
	defer rows.Close()

	out := make([]Employee, 0, req.Limit())
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context, filter Filter) (int, error) {
	var args []any
	where := filter.Where(&args)
	var count int
	err := querier.From(ctx, s.DB).QueryRow(ctx, "SELECT COUNT(1) FROM employees e "+where, args...).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "count employees")
	}
	return count, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (Employee, error) {
	row := querier.From(ctx, s.DB).QueryRow(ctx, selectColumns+"\n    WHERE e.id = $1", id)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)
  `, id).Scan(&exists)
	return exists, err
}

func (s *Store) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1 AND id <> $2)
  `, email, excludeID).Scan(&exists)
	return exists, err
}

func (s *Store) ExistsByPhoneNumber(ctx context.Context, phone string, excludeID int64) (bool, error) {
	var exists bool
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM employees WHERE phone_number = $1 AND id <> $2)
  `, phone, excludeID).Scan(&exists)
	return exists, err
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO employees (name, surname, patronymic, email, phone_number, date_of_birth, date_of_employment, gender)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, emp.Name, emp.Surname, emp.Patronymic, emp.Email, emp.PhoneNumber,
		emp.DateOfBirth, emp.DateOfEmployment, string(emp.Gender),
	).Scan(&emp.ID)
	if err != nil {
		return Employee{}, translateWriteError(err)
	}
	if emp.Positions == nil {
		emp.Positions = []string{}
	}
	return emp, nil
}

func (s *Store) Update(ctx context.Context, emp Employee) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx, `
    UPDATE employees
    SET name = $1,
        surname = $2,
        patronymic = $3,
        email = $4,
        phone_number = $5,
        date_of_birth = $6,
        date_of_employment = $7,
        gender = $8
    WHERE id = $9
  `, emp.Name, emp.Surname, emp.Patronymic, emp.Email, emp.PhoneNumber,
		emp.DateOfBirth, emp.DateOfEmployment, string(emp.Gender), emp.ID)
	if err != nil {
		return translateWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the employee; salaries, payrolls, bonuses, leaves and
// position links go with it through ON DELETE CASCADE.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "delete employee")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var gender string
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Surname, &emp.Patronymic, &emp.Email, &emp.PhoneNumber,
		&emp.DateOfBirth, &emp.DateOfEmployment, &gender, &emp.Positions,
	)
	emp.Gender = Gender(gender)
	return emp, err
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "employees_email_key":
			return ErrEmailTaken
		case "employees_phone_number_key":
			return ErrPhoneNumberTaken
		}
	}
	return errors.Wrap(err, "write employee")
}
