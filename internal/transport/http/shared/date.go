package shared

import "time"

const DateLayout = time.DateOnly

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar day at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		var rfcErr error
		if parsed, rfcErr = time.Parse(time.RFC3339, value); rfcErr != nil {
			return time.Time{}, err
		}
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// EndBeforeStart reports whether an optional end date precedes start.
func EndBeforeStart(start time.Time, end *time.Time) bool {
	return end != nil && end.Before(start)
}
