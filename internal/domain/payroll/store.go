package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, basic_salary, hra_percent, bonus_percent, tax_percent,
           COALESCE(department_id::text, ''), joined_on
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.FullName, &e.BasicSalary, &e.HRAPercent, &e.BonusPercent, &e.TaxPercent, &e.DepartmentID, &e.JoinedOn)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name, basic_salary, hra_percent, bonus_percent, tax_percent,
           COALESCE(department_id::text, ''), joined_on
    FROM employees
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.BasicSalary, &e.HRAPercent, &e.BonusPercent, &e.TaxPercent, &e.DepartmentID, &e.JoinedOn); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// UpsertPayslip writes the computed amounts for (employeeID, period) as a
// single statement: insert with a fresh id, or overwrite the existing row
// and refresh processed_at. The unique constraint on (employee_id, period)
// is the arbiter, so no check-then-insert race exists.
func (s *Store) UpsertPayslip(ctx context.Context, employeeID, period string, gross, tax, net decimal.Decimal) (Payslip, error) {
	var p Payslip
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payslips (employee_id, period, gross, tax, net)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id, period)
    DO UPDATE SET gross = EXCLUDED.gross, tax = EXCLUDED.tax, net = EXCLUDED.net, processed_at = now()
    RETURNING id, employee_id, period, gross, tax, net, processed_at
  `, employeeID, period, gross, tax, net).Scan(&p.ID, &p.EmployeeID, &p.Period, &p.Gross, &p.Tax, &p.Net, &p.ProcessedAt)
	if err != nil {
		return Payslip{}, err
	}
	return p, nil
}

func (s *Store) GetPayslip(ctx context.Context, employeeID, period string) (Payslip, error) {
	var p Payslip
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, period, gross, tax, net, processed_at
    FROM payslips
    WHERE employee_id = $1 AND period = $2
  `, employeeID, period).Scan(&p.ID, &p.EmployeeID, &p.Period, &p.Gross, &p.Tax, &p.Net, &p.ProcessedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, fmt.Errorf("%w: employee %s period %s", ErrPayslipNotFound, employeeID, period)
	}
	if err != nil {
		return Payslip{}, err
	}
	return p, nil
}

// DeptReport opens a cursor over per-department totals for the period.
// Inner joins only: departments with no payslip in the period are excluded.
// Ordered by total net descending, department name as the tie-break.
func (s *Store) DeptReport(ctx context.Context, period string) (ReportRows, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.name, COUNT(DISTINCT e.id), SUM(p.net), AVG(p.net)
    FROM departments d
    JOIN employees e ON e.department_id = d.id
    JOIN payslips p ON p.employee_id = e.id
    WHERE p.period = $1
    GROUP BY d.name
    ORDER BY SUM(p.net) DESC, d.name
  `, period)
	if err != nil {
		return nil, err
	}
	return &pgxReportRows{rows: rows}, nil
}

type pgxReportRows struct {
	rows pgx.Rows
}

func (r *pgxReportRows) Next() bool {
	return r.rows.Next()
}

func (r *pgxReportRows) Row() (ReportRow, error) {
	var row ReportRow
	if err := r.rows.Scan(&row.DeptName, &row.EmployeeCount, &row.TotalNet, &row.AvgNet); err != nil {
		return ReportRow{}, err
	}
	return row, nil
}

func (r *pgxReportRows) Err() error {
	return r.rows.Err()
}

func (r *pgxReportRows) Close() {
	r.rows.Close()
}

func (s *Store) PayslipPDFData(ctx context.Context, employeeID, period string) (PayslipPDFData, error) {
	var data PayslipPDFData
	err := s.DB.QueryRow(ctx, `
    SELECT e.full_name, COALESCE(d.name, ''), p.period, p.gross, p.tax, p.net
    FROM payslips p
    JOIN employees e ON p.employee_id = e.id
    LEFT JOIN departments d ON e.department_id = d.id
    WHERE p.employee_id = $1 AND p.period = $2
  `, employeeID, period).Scan(&data.FullName, &data.DeptName, &data.Period, &data.Gross, &data.Tax, &data.Net)
	if errors.Is(err, pgx.ErrNoRows) {
		return PayslipPDFData{}, fmt.Errorf("%w: employee %s period %s", ErrPayslipNotFound, employeeID, period)
	}
	if err != nil {
		return PayslipPDFData{}, err
	}
	return data, nil
}
