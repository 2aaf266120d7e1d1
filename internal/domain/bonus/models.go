package bonus

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"hrrecords/internal/domain/page"
)

type Bonus struct {
	ID          int64
	EmployeeID  int64
	Amount      decimal.Decimal
	Description string
	PaymentDate time.Time
}

func (b *Bonus) CopyFrom(src Bonus) {
	b.Amount = src.Amount
	b.Description = src.Description
	b.PaymentDate = src.PaymentDate
}

var ErrNotFound = errors.New("bonus not found")

var SortColumns = page.Columns{
	"id":          "b.id",
	"amount":      "b.amount",
	"description": "b.description",
	"paymentDate": "b.payment_date",
}
