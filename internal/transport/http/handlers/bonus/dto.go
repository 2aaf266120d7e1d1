package bonushandler

import (
	"github.com/shopspring/decimal"

	"hrrecords/internal/domain/bonus"
	"hrrecords/internal/transport/http/shared"
)

type request struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,max=1000"`
	PaymentDate string          `json:"paymentDate" validate:"required,datetime=2006-01-02"`
}

func (r request) toModel() bonus.Bonus {
	paid, _ := shared.ParseDate(r.PaymentDate)
	return bonus.Bonus{Amount: r.Amount, Description: r.Description, PaymentDate: paid}
}

type response struct {
	ID          int64           `json:"id"`
	EmployeeID  int64           `json:"employeeId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PaymentDate string          `json:"paymentDate"`
}

func toResponse(b bonus.Bonus) response {
	return response{
		ID:          b.ID,
		EmployeeID:  b.EmployeeID,
		Amount:      b.Amount,
		Description: b.Description,
		PaymentDate: shared.FormatDate(b.PaymentDate),
	}
}
