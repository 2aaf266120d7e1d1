package payrollhandler

import (
	"hrrecords/internal/domain/payroll"
	"hrrecords/internal/transport/http/shared"
)

type request struct {
	PaymentDate string `json:"paymentDate" validate:"required,datetime=2006-01-02"`
}

func (r request) toModel() payroll.Payroll {
	paid, _ := shared.ParseDate(r.PaymentDate)
	return payroll.Payroll{PaymentDate: paid}
}

type response struct {
	ID          int64  `json:"id"`
	SalaryID    int64  `json:"salaryId"`
	PaymentDate string `json:"paymentDate"`
}

func toResponse(p payroll.Payroll) response {
	return response{ID: p.ID, SalaryID: p.SalaryID, PaymentDate: shared.FormatDate(p.PaymentDate)}
}
