package employeehandler

import (
	"hrrecords/internal/domain/employee"
	"hrrecords/internal/transport/http/shared"
)

type request struct {
	Name             string `json:"name" validate:"required,max=255"`
	Surname          string `json:"surname" validate:"required,max=255"`
	Patronymic       string `json:"patronymic" validate:"required,max=255"`
	Email            string `json:"email" validate:"required,email,max=255"`
	PhoneNumber      string `json:"phoneNumber" validate:"required,phone"`
	DateOfBirth      string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	DateOfEmployment string `json:"dateOfEmployment" validate:"required,datetime=2006-01-02"`
	Gender           string `json:"gender" validate:"required,oneof=MALE FEMALE"`
}

// toModel assumes the request passed validation.
func (r request) toModel() employee.Employee {
	born, _ := shared.ParseDate(r.DateOfBirth)
	employed, _ := shared.ParseDate(r.DateOfEmployment)
	return employee.Employee{
		Name:             r.Name,
		Surname:          r.Surname,
		Patronymic:       r.Patronymic,
		Email:            r.Email,
		PhoneNumber:      r.PhoneNumber,
		DateOfBirth:      born,
		DateOfEmployment: employed,
		Gender:           employee.Gender(r.Gender),
	}
}

type response struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Surname          string   `json:"surname"`
	Patronymic       string   `json:"patronymic"`
	Email            string   `json:"email"`
	PhoneNumber      string   `json:"phoneNumber"`
	DateOfBirth      string   `json:"dateOfBirth"`
	DateOfEmployment string   `json:"dateOfEmployment"`
	Gender           string   `json:"gender"`
	Positions        []string `json:"positions"`
}

func toResponse(e employee.Employee) response {
	positions := e.Positions
	if positions == nil {
		positions = []string{}
	}
	return response{
		ID:               e.ID,
		Name:             e.Name,
		Surname:          e.Surname,
		Patronymic:       e.Patronymic,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		DateOfBirth:      shared.FormatDate(e.DateOfBirth),
		DateOfEmployment: shared.FormatDate(e.DateOfEmployment),
		Gender:           string(e.Gender),
		Positions:        positions,
	}
}
