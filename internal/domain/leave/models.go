package leave

import (
	"errors"
	"time"

	"hrrecords/internal/domain/page"
)

type Leave struct {
	ID         int64
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
}

func (l *Leave) CopyFrom(src Leave) {
	l.StartDate = src.StartDate
	l.EndDate = src.EndDate
}

var ErrNotFound = errors.New("leave not found")

var SortColumns = page.Columns{
	"id":        "l.id",
	"startDate": "l.start_date",
	"endDate":   "l.end_date",
}
