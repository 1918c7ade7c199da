package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the engine's read-only view of a directory record.
type Employee struct {
	ID           string          `json:"id"`
	FullName     string          `json:"fullName"`
	BasicSalary  decimal.Decimal `json:"basicSalary"`
	HRAPercent   decimal.Decimal `json:"hraPercent"`
	BonusPercent decimal.Decimal `json:"bonusPercent"`
	TaxPercent   decimal.Decimal `json:"taxPercent"`
	DepartmentID string          `json:"departmentId,omitempty"`
	JoinedOn     time.Time       `json:"joinedOn"`
}

// Payslip is the persisted result for one employee in one period. At most
// one row exists per (employee, period); reruns overwrite the amounts and
// refresh ProcessedAt.
type Payslip struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employeeId"`
	Period      string          `json:"period"`
	Gross       decimal.Decimal `json:"gross"`
	Tax         decimal.Decimal `json:"tax"`
	Net         decimal.Decimal `json:"net"`
	ProcessedAt time.Time       `json:"processedAt"`
}

type Breakdown struct {
	HRA   decimal.Decimal `json:"hra"`
	Bonus decimal.Decimal `json:"bonus"`
	Gross decimal.Decimal `json:"gross"`
	Tax   decimal.Decimal `json:"tax"`
	Net   decimal.Decimal `json:"net"`
}

type ReportRow struct {
	DeptName      string          `json:"deptName"`
	EmployeeCount int             `json:"employeeCount"`
	TotalNet      decimal.Decimal `json:"totalNet"`
	AvgNet        decimal.Decimal `json:"avgNet"`
}

type BatchFailure struct {
	EmployeeID string `json:"employeeId"`
	Err        string `json:"error"`
}

type BatchResult struct {
	Period    string         `json:"period"`
	Processed int            `json:"processed"`
	Failures  []BatchFailure `json:"failures,omitempty"`
}

type PayslipPDFData struct {
	FullName string
	DeptName string
	Period   string
	Gross    decimal.Decimal
	Tax      decimal.Decimal
	Net      decimal.Decimal
}
