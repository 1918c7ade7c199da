package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslipPDF writes a one-page PDF for the stored (employee, period)
// payslip and returns the file path. The payslip must already have been
// processed for the period.
func (s *Service) RenderPayslipPDF(ctx context.Context, employeeID, period string) (string, error) {
	payslip, err := s.store.GetPayslip(ctx, employeeID, period)
	if err != nil {
		return "", err
	}
	data, err := s.store.PayslipPDFData(ctx, employeeID, period)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.payslipDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.payslipDir, payslip.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", data.FullName))
	pdf.Ln(7)
	if data.DeptName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", data.DeptName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", data.Period))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", data.Gross.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax: %s", data.Tax.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", data.Net.StringFixed(2)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
