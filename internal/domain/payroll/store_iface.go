package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReportRows is a lazy cursor over department report rows. Close may be
// called before exhaustion; calling DeptReport again restarts the query.
type ReportRows interface {
	Next() bool
	Row() (ReportRow, error)
	Err() error
	Close()
}

type StoreAPI interface {
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	UpsertPayslip(ctx context.Context, employeeID, period string, gross, tax, net decimal.Decimal) (Payslip, error)
	GetPayslip(ctx context.Context, employeeID, period string) (Payslip, error)
	DeptReport(ctx context.Context, period string) (ReportRows, error)
	PayslipPDFData(ctx context.Context, employeeID, period string) (PayslipPDFData, error)
}
