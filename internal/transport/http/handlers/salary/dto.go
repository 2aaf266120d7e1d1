package salaryhandler

import (
	"github.com/shopspring/decimal"

	"hrrecords/internal/domain/salary"
	"hrrecords/internal/transport/http/shared"
)

type request struct {
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	StartDate     string          `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string          `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	CurrentSalary *bool           `json:"currentSalary" validate:"required"`
}

func (r request) toModel() salary.Salary {
	start, _ := shared.ParseDate(r.StartDate)
	sal := salary.Salary{
		Amount:        r.Amount,
		StartDate:     start,
		CurrentSalary: *r.CurrentSalary,
	}
	if r.EndDate != "" {
		end, _ := shared.ParseDate(r.EndDate)
		sal.EndDate = &end
	}
	return sal
}

type response struct {
	ID            int64           `json:"id"`
	EmployeeID    int64           `json:"employeeId"`
	Amount        decimal.Decimal `json:"amount"`
	StartDate     string          `json:"startDate"`
	EndDate       *string         `json:"endDate"`
	CurrentSalary bool            `json:"currentSalary"`
}

func toResponse(s salary.Salary) response {
	return response{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		Amount:        s.Amount,
		StartDate:     shared.FormatDate(s.StartDate),
		EndDate:       shared.FormatDatePtr(s.EndDate),
		CurrentSalary: s.CurrentSalary,
	}
}
