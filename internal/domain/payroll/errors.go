package payroll

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidEmployeeData = errors.New("invalid employee data")
	ErrPayslipNotFound     = errors.New("payslip not found")
)
