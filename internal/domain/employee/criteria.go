package employee

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"hrrecords/internal/domain/page"
)

// Criteria is an employee search request. Empty strings, nil dates and an
// empty gender mean "no constraint".
type Criteria struct {
	Name             string
	Surname          string
	Patronymic       string
	Email            string
	PhoneNumber      string
	DateOfBirth      *time.Time
	DateOfEmployment *time.Time
	Gender           Gender
	PositionName     string
}

// SortColumns lists the fields employees can be ordered by.
var SortColumns = page.Columns{
	"id":               "e.id",
	"name":             "e.name",
	"surname":          "e.surname",
	"patronymic":       "e.patronymic",
	"email":            "e.email",
	"phoneNumber":      "e.phone_number",
	"dateOfBirth":      "e.date_of_birth",
	"dateOfEmployment": "e.date_of_employment",
	"gender":           "e.gender",
}

// Binder appends a value to the query arguments and returns its placeholder.
type Binder func(value any) string

// Predicate is a single optional constraint. It renders to SQL against the
// employees table aliased as e, and evaluates the same rule in memory. The
// zero Predicate constrains nothing.
type Predicate struct {
	sql   func(bind Binder) string
	match func(Employee) bool
}

func (p Predicate) Active() bool {
	return p.sql != nil && p.match != nil
}

func NameContains(name string) Predicate {
	return contains("e.name", name, func(e Employee) string { return e.Name })
}

func SurnameContains(surname string) Predicate {
	return contains("e.surname", surname, func(e Employee) string { return e.Surname })
}

func PatronymicContains(patronymic string) Predicate {
	return contains("e.patronymic", patronymic, func(e Employee) string { return e.Patronymic })
}

func EmailIs(email string) Predicate {
	return equals("e.email", email, func(e Employee) string { return e.Email })
}

func PhoneNumberIs(phone string) Predicate {
	return equals("e.phone_number", phone, func(e Employee) string { return e.PhoneNumber })
}

func GenderIs(gender Gender) Predicate {
	return equals("e.gender", string(gender), func(e Employee) string { return string(e.Gender) })
}

func DateOfBirthIs(date *time.Time) Predicate {
	return sameDate("e.date_of_birth", date, func(e Employee) time.Time { return e.DateOfBirth })
}

func DateOfEmploymentIs(date *time.Time) Predicate {
	return sameDate("e.date_of_employment", date, func(e Employee) time.Time { return e.DateOfEmployment })
}

// HoldsPosition matches employees with at least one assigned position of that name.
func HoldsPosition(name string) Predicate {
	if name == "" {
		return Predicate{}
	}
	return Predicate{
		sql: func(bind Binder) string {
			return `EXISTS (
      SELECT 1
      FROM employee_positions ep
      JOIN positions p ON p.id = ep.position_id
      WHERE ep.employee_id = e.id AND p.name = ` + bind(name) + `
    )`
		},
		match: func(e Employee) bool { return slices.Contains(e.Positions, name) },
	}
}

// contains is a case-sensitive substring match. strpos is used instead of
// LIKE so that % and _ in the input are taken literally.
func contains(column, value string, field func(Employee) string) Predicate {
	if value == "" {
		return Predicate{}
	}
	return Predicate{
		sql:   func(bind Binder) string { return "strpos(" + column + ", " + bind(value) + ") > 0" },
		match: func(e Employee) bool { return strings.Contains(field(e), value) },
	}
}

func equals(column, value string, field func(Employee) string) Predicate {
	if value == "" {
		return Predicate{}
	}
	return Predicate{
		sql:   func(bind Binder) string { return column + " = " + bind(value) },
		match: func(e Employee) bool { return field(e) == value },
	}
}

func sameDate(column string, value *time.Time, field func(Employee) time.Time) Predicate {
	if value == nil || value.IsZero() {
		return Predicate{}
	}
	day := value.Format(time.DateOnly)
	bound := time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
	return Predicate{
		sql:   func(bind Binder) string { return column + " = " + bind(bound) },
		match: func(e Employee) bool { return field(e).Format(time.DateOnly) == day },
	}
}

// Filter is a conjunction of predicates. An empty Filter matches everything.
type Filter []Predicate

func All(predicates ...Predicate) Filter {
	out := make(Filter, 0, len(predicates))
	for _, p := range predicates {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

func ForCriteria(c Criteria) Filter {
	return All(
		NameContains(c.Name),
		SurnameContains(c.Surname),
		PatronymicContains(c.Patronymic),
		EmailIs(c.Email),
		PhoneNumberIs(c.PhoneNumber),
		DateOfBirthIs(c.DateOfBirth),
		DateOfEmploymentIs(c.DateOfEmployment),
		GenderIs(c.Gender),
		HoldsPosition(c.PositionName),
	)
}

func (f Filter) Match(e Employee) bool {
	for _, p := range f {
		if !p.match(e) {
			return false
		}
	}
	return true
}

// Where renders the filter as a WHERE clause, appending bound values to args.
// An empty filter renders to an empty string.
func (f Filter) Where(args *[]any) string {
	if len(f) == 0 {
		return ""
	}
	bind := func(value any) string {
		*args = append(*args, value)
		return fmt.Sprintf("$%d", len(*args))
	}
	clauses := make([]string, 0, len(f))
	for _, p := range f {
		clauses = append(clauses, p.sql(bind))
	}
	return "WHERE " + strings.Join(clauses, " AND ")
}
