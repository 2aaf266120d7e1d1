package salary

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestStoreFindParsesNumericAmount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE s\.employee_id = \$1 AND s\.id = \$2`).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "amount", "start_date", "end_date", "current_salary"}).
			AddRow(int64(3), int64(1), "1234.56", start, (*time.Time)(nil), true))

	s, err := NewStore(mock).FindByEmployeeAndID(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Equal(t, "1234.56", s.Amount.StringFixed(2))
	require.Nil(t, s.EndDate)
	require.True(t, s.CurrentSalary)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFindMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM salaries s`).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "amount", "start_date", "end_date", "current_salary"}))

	_, err = NewStore(mock).FindByEmployeeAndID(context.Background(), 1, 3)
	require.ErrorIs(t, err, ErrNotFound)
}
