package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedEmployee struct {
	fullName     string
	basicSalary  string
	hraPercent   string
	bonusPercent string
	taxPercent   string
	department   string
}

var seedEmployees = []seedEmployee{
	{"Asha Verma", "50000", "30", "10", "10", "Engineering"},
	{"Ravi Nair", "60000", "40", "15", "10", "Engineering"},
	{"Meera Iyer", "45000", "30", "10", "10", "Sales"},
	{"Karan Shah", "70000", "30", "10", "10", "Sales"},
}

// Seed inserts a small demo population: two departments and four employees.
// Safe to run repeatedly; existing rows are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	deptIDs := map[string]string{}
	for _, name := range []string{"Engineering", "Sales"} {
		id, err := ensureDepartment(ctx, pool, name)
		if err != nil {
			return err
		}
		deptIDs[name] = id
	}

	for _, e := range seedEmployees {
		if err := ensureEmployee(ctx, pool, e, deptIDs[e.department]); err != nil {
			return err
		}
	}

	return nil
}

func ensureDepartment(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM departments WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	err = pool.QueryRow(ctx, "INSERT INTO departments (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureEmployee(ctx context.Context, pool *pgxpool.Pool, e seedEmployee, deptID string) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE full_name = $1", e.fullName).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := pool.Exec(ctx, `
    INSERT INTO employees (full_name, basic_salary, hra_percent, bonus_percent, tax_percent, department_id)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, e.fullName, e.basicSalary, e.hraPercent, e.bonusPercent, e.taxPercent, deptID)
	return err
}
