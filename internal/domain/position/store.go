package position

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrrecords/internal/domain/page"
	"hrrecords/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, req page.Request) ([]Position, error) {
	rows, err := querier.From(ctx, s.DB).Query(ctx, `
    SELECT p.id, p.name
    FROM positions p
    `+SortColumns.OrderBy(req.Sort, "p.id")+`
    LIMIT $1 OFFSET $2
  `, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list positions")
	}
	return collect(rows)
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := querier.From(ctx, s.DB).QueryRow(ctx, "SELECT COUNT(1) FROM positions").Scan(&count)
	return count, err
}

func (s *Store) FindByID(ctx context.Context, id int64) (Position, error) {
	var p Position
	err := querier.From(ctx, s.DB).QueryRow(ctx, "SELECT id, name FROM positions WHERE id = $1", id).Scan(&p.ID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Position{}, ErrNotFound
	}
	return p, err
}

func (s *Store) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := querier.From(ctx, s.DB).QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM positions WHERE name = $1)", name).Scan(&exists)
	return exists, err
}

func (s *Store) Create(ctx context.Context, name string) (Position, error) {
	p := Position{Name: name}
	err := querier.From(ctx, s.DB).QueryRow(ctx, "INSERT INTO positions (name) VALUES ($1) RETURNING id", name).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Position{}, ErrNameTaken
		}
		return Position{}, errors.Wrap(err, "insert position")
	}
	return p, nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64, req page.Request) ([]Position, error) {
	rows, err := querier.From(ctx, s.DB).Query(ctx, `
    SELECT p.id, p.name
    FROM positions p
    JOIN employee_positions ep ON ep.position_id = p.id
    WHERE ep.employee_id = $1
    `+SortColumns.OrderBy(req.Sort, "p.id")+`
    LIMIT $2 OFFSET $3
  `, employeeID, req.Limit(), req.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "list employee positions")
	}
	return collect(rows)
}

func (s *Store) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	var count int
	err := querier.From(ctx, s.DB).QueryRow(ctx,
		"SELECT COUNT(1) FROM employee_positions WHERE employee_id = $1", employeeID).Scan(&count)
	return count, err
}

func (s *Store) FindByEmployee(ctx context.Context, employeeID, positionID int64) (Position, error) {
	var p Position
	err := querier.From(ctx, s.DB).QueryRow(ctx, `
    SELECT p.id, p.name
    FROM positions p
    JOIN employee_positions ep ON ep.position_id = p.id
    WHERE ep.employee_id = $1 AND p.id = $2
  `, employeeID, positionID).Scan(&p.ID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Position{}, ErrNotFound
	}
	return p, err
}

// Assign links the position to the employee. Linking twice is a no-op.
func (s *Store) Assign(ctx context.Context, employeeID, positionID int64) error {
	_, err := querier.From(ctx, s.DB).Exec(ctx, `
    INSERT INTO employee_positions (employee_id, position_id)
    VALUES ($1, $2)
    ON CONFLICT DO NOTHING
  `, employeeID, positionID)
	if err != nil {
		return errors.Wrap(err, "assign position")
	}
	return nil
}

func (s *Store) Unassign(ctx context.Context, employeeID, positionID int64) error {
	tag, err := querier.From(ctx, s.DB).Exec(ctx,
		"DELETE FROM employee_positions WHERE employee_id = $1 AND position_id = $2", employeeID, positionID)
	if err != nil {
		return errors.Wrap(err, "unassign position")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collect(rows pgx.Rows) ([]Position, error) {
	defer rows.Close()
	out := []Position{}
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
