package leave

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date before start date")

// Days returns the inclusive calendar day count between start and end.
func Days(start, end time.Time) (int, error) {
	start = truncate(start)
	end = truncate(end)
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
