package payroll

import "github.com/shopspring/decimal"

// Line is one earning printed on a payslip.
type Line struct {
	Label  string
	Amount decimal.Decimal
}

// ComputeGross sums the base salary and every additional earning.
func ComputeGross(base decimal.Decimal, lines []Line) decimal.Decimal {
	gross := base
	for _, line := range lines {
		gross = gross.Add(line.Amount)
	}
	return gross
}
