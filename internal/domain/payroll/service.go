package payroll

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service struct {
	store      StoreAPI
	payslipDir string
}

// NewService wires the engine over a payslip store. payslipDir is where
// rendered payslip PDFs land.
func NewService(store StoreAPI, payslipDir string) *Service {
	return &Service{store: store, payslipDir: payslipDir}
}

// CalculateSalary computes and persists one employee's payslip for the
// period, returning the net salary. Rerunning for the same (employee,
// period) overwrites the stored amounts and refreshes the processed
// timestamp; a payslip is never duplicated. Nothing is written when the
// lookup or the computation fails.
func (s *Service) CalculateSalary(ctx context.Context, employeeID, period string) (decimal.Decimal, error) {
	employee, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("calculate salary for period %s: %w", period, err)
	}

	breakdown, err := Compute(employee)
	if err != nil {
		return decimal.Zero, fmt.Errorf("calculate salary for period %s: %w", period, err)
	}

	payslip, err := s.store.UpsertPayslip(ctx, employeeID, period, breakdown.Gross, breakdown.Tax, breakdown.Net)
	if err != nil {
		return decimal.Zero, fmt.Errorf("persist payslip for employee %s period %s: %w", employeeID, period, err)
	}

	zap.L().Info("payslip processed",
		zap.String("employeeId", employeeID),
		zap.String("period", period),
		zap.String("net", payslip.Net.String()))
	return payslip.Net, nil
}

// GenerateMonthly runs CalculateSalary for every employee in the directory.
// Per-employee failures are collected into the result and processing
// continues with the remaining employees; this intentionally replaces the
// halt-on-first-error behavior of earlier payroll runs. The error return
// covers only the initial directory listing.
func (s *Service) GenerateMonthly(ctx context.Context, period string) (BatchResult, error) {
	zap.L().Info("payroll run started", zap.String("period", period))

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return BatchResult{Period: period}, fmt.Errorf("list employees for period %s: %w", period, err)
	}

	result := BatchResult{Period: period}
	for _, employee := range employees {
		if _, err := s.CalculateSalary(ctx, employee.ID, period); err != nil {
			zap.L().Warn("payslip failed",
				zap.String("employeeId", employee.ID),
				zap.String("period", period),
				zap.Error(err))
			result.Failures = append(result.Failures, BatchFailure{EmployeeID: employee.ID, Err: err.Error()})
			continue
		}
		result.Processed++
	}

	zap.L().Info("payroll run finished",
		zap.String("period", period),
		zap.Int("processed", result.Processed),
		zap.Int("failed", len(result.Failures)))
	return result, nil
}

// DepartmentReport opens a lazy cursor over per-department totals for the
// period. The caller owns the cursor and must Close it.
func (s *Service) DepartmentReport(ctx context.Context, period string) (ReportRows, error) {
	return s.store.DeptReport(ctx, period)
}

// CollectReport drains a department report into a slice.
func (s *Service) CollectReport(ctx context.Context, period string) ([]ReportRow, error) {
	cursor, err := s.store.DeptReport(ctx, period)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var report []ReportRow
	for cursor.Next() {
		row, err := cursor.Row()
		if err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) GetPayslip(ctx context.Context, employeeID, period string) (Payslip, error) {
	return s.store.GetPayslip(ctx, employeeID, period)
}
