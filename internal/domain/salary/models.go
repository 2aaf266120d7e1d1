package salary

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"hrrecords/internal/domain/page"
)

type Salary struct {
	ID            int64
	EmployeeID    int64
	Amount        decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time
	CurrentSalary bool
}

// CopyFrom overwrites the mutable fields. ID and EmployeeID are kept.
func (s *Salary) CopyFrom(src Salary) {
	s.Amount = src.Amount
	s.StartDate = src.StartDate
	s.EndDate = src.EndDate
	s.CurrentSalary = src.CurrentSalary
}

var ErrNotFound = errors.New("salary not found")

var SortColumns = page.Columns{
	"id":            "s.id",
	"amount":        "s.amount",
	"startDate":     "s.start_date",
	"endDate":       "s.end_date",
	"currentSalary": "s.current_salary",
}
