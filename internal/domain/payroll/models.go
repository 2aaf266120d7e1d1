package payroll

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"hrrecords/internal/domain/page"
)

type Payroll struct {
	ID          int64
	SalaryID    int64
	PaymentDate time.Time
}

func (p *Payroll) CopyFrom(src Payroll) {
	p.PaymentDate = src.PaymentDate
}

// PayslipData is everything printed on a payslip for one payroll.
type PayslipData struct {
	PayrollID   int64
	Name        string
	Surname     string
	Patronymic  string
	Email       string
	Salary      decimal.Decimal
	PaymentDate time.Time
	// Bonuses paid to the employee in the month of the payment date.
	Bonuses []Line
}

var ErrNotFound = errors.New("payroll not found")

var SortColumns = page.Columns{
	"id":          "p.id",
	"paymentDate": "p.payment_date",
}
