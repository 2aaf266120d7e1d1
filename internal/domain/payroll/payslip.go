package payroll

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslip writes a one-page A4 payslip PDF to w.
func RenderPayslip(w io.Writer, data PayslipData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Payslip %d", data.PayrollID), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	name := strings.TrimSpace(strings.Join([]string{data.Surname, data.Name, data.Patronymic}, " "))
	pdf.Cell(0, 8, tr("Employee: "+name))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr("Email: "+data.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, "Payment date: "+data.PaymentDate.Format(time.DateOnly))
	pdf.Ln(10)

	pdf.Cell(120, 8, "Salary")
	pdf.CellFormat(0, 8, data.Salary.StringFixed(2), "", 1, "R", false, 0, "")
	for _, line := range data.Bonuses {
		pdf.Cell(120, 8, tr("Bonus: "+line.Label))
		pdf.CellFormat(0, 8, line.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(120, 8, "Gross")
	pdf.CellFormat(0, 8, ComputeGross(data.Salary, data.Bonuses).StringFixed(2), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}
