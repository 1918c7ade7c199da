package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertDepartment(ctx context.Context, dept Department) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO departments (id, name)
    VALUES ($1,$2)
  `, dept.ID, dept.Name)
	if isPgError(err, pgUniqueViolation) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, dept.Name)
	}
	return err
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM departments
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

func (s *Store) InsertEmployee(ctx context.Context, employee Employee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (id, full_name, basic_salary, hra_percent, bonus_percent, tax_percent, department_id, joined_on)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, employee.ID, employee.FullName, employee.BasicSalary, employee.HRAPercent, employee.BonusPercent, employee.TaxPercent,
		nullIfEmpty(employee.DepartmentID), employee.JoinedOn)
	if isPgError(err, pgForeignKeyViolation) {
		return fmt.Errorf("%w: %s", ErrDepartmentNotFound, employee.DepartmentID)
	}
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, basic_salary, hra_percent, bonus_percent, tax_percent,
           COALESCE(department_id::text, ''), joined_on, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.FullName, &e.BasicSalary, &e.HRAPercent, &e.BonusPercent, &e.TaxPercent, &e.DepartmentID, &e.JoinedOn, &e.CreatedAt)
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
           COALESCE(department_id::text, ''), joined_on, created_at
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
		if err := rows.Scan(&e.ID, &e.FullName, &e.BasicSalary, &e.HRAPercent, &e.BonusPercent, &e.TaxPercent, &e.DepartmentID, &e.JoinedOn, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, employee Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET basic_salary = $2, hra_percent = $3, bonus_percent = $4, tax_percent = $5
    WHERE id = $1
  `, employee.ID, employee.BasicSalary, employee.HRAPercent, employee.BonusPercent, employee.TaxPercent)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, employee.ID)
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	return nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
