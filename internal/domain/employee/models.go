package employee

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

var Genders = []string{string(GenderMale), string(GenderFemale)}

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type Employee struct {
	ID               int64
	Name             string
	Surname          string
	Patronymic       string
	Email            string
	PhoneNumber      string
	DateOfBirth      time.Time
	DateOfEmployment time.Time
	Gender           Gender
	// Positions holds the names of assigned positions. It is read-only here;
	// assignments go through the position service.
	Positions []string
}

// CopyFrom overwrites every mutable field with the values from src. Identity
// and position assignments are left untouched.
func (e *Employee) CopyFrom(src Employee) {
	e.Name = src.Name
	e.Surname = src.Surname
	e.Patronymic = src.Patronymic
	e.Email = src.Email
	e.PhoneNumber = src.PhoneNumber
	e.DateOfBirth = src.DateOfBirth
	e.DateOfEmployment = src.DateOfEmployment
	e.Gender = src.Gender
}
