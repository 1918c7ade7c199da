package payroll

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"payrun/internal/platform/config"
	"payrun/internal/platform/db"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, config.Config{DatabaseURL: dbURL})
	if err != nil {
		t.Fatalf("db connect failed: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	return pool
}

type fixture struct {
	period      string
	engineering string
	engName     string
	sales       string
	salesName   string
	empty       string
	emptyName   string
	employees   []string
}

func seedFixture(t *testing.T, pool *pgxpool.Pool) fixture {
	t.Helper()
	ctx := context.Background()
	tag := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(1000))

	f := fixture{period: fmt.Sprintf("%04d-%02d", 3000+rand.Intn(999), 1+rand.Intn(12))}

	f.engName = "Engineering " + tag
	f.salesName = "Sales " + tag
	f.emptyName = "Empty " + tag
	depts := map[string]*string{
		f.engName:   &f.engineering,
		f.salesName: &f.sales,
		f.emptyName: &f.empty,
	}
	for name, target := range depts {
		if err := pool.QueryRow(ctx,
			"INSERT INTO departments (name) VALUES ($1) RETURNING id", name,
		).Scan(target); err != nil {
			t.Fatalf("insert department failed: %v", err)
		}
	}

	rows := []struct {
		name   string
		basic  string
		hra    string
		bonus  string
		tax    string
		deptID string
	}{
		{"Asha " + tag, "50000", "30", "10", "10", f.engineering},
		{"Ravi " + tag, "60000", "40", "15", "10", f.engineering},
		{"Meera " + tag, "45000", "30", "10", "10", f.sales},
		{"Karan " + tag, "70000", "30", "10", "10", f.sales},
	}
	for _, row := range rows {
		var id string
		if err := pool.QueryRow(ctx, `
      INSERT INTO employees (full_name, basic_salary, hra_percent, bonus_percent, tax_percent, department_id)
      VALUES ($1,$2,$3,$4,$5,$6)
      RETURNING id
    `, row.name, row.basic, row.hra, row.bonus, row.tax, row.deptID).Scan(&id); err != nil {
			t.Fatalf("insert employee failed: %v", err)
		}
		f.employees = append(f.employees, id)
	}

	t.Cleanup(func() {
		for _, id := range f.employees {
			_, _ = pool.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
		}
		for _, id := range []string{f.engineering, f.sales, f.empty} {
			_, _ = pool.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
		}
	})
	return f
}

func countPayslips(t *testing.T, pool *pgxpool.Pool, employeeID, period string) int {
	t.Helper()
	var count int
	if err := pool.QueryRow(context.Background(),
		"SELECT COUNT(1) FROM payslips WHERE employee_id = $1 AND period = $2", employeeID, period,
	).Scan(&count); err != nil {
		t.Fatalf("count payslips failed: %v", err)
	}
	return count
}

func TestStoreUpsertPayslipIsUnique(t *testing.T) {
	pool := testPool(t)
	f := seedFixture(t, pool)
	store := NewStore(pool)
	ctx := context.Background()

	first, err := store.UpsertPayslip(ctx, f.employees[0], f.period, dec(t, "70000"), dec(t, "7000"), dec(t, "63000"))
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	second, err := store.UpsertPayslip(ctx, f.employees[0], f.period, dec(t, "70000"), dec(t, "7000"), dec(t, "63000"))
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("upsert created a second row: %s vs %s", first.ID, second.ID)
	}
	if !second.ProcessedAt.After(first.ProcessedAt) {
		t.Fatalf("expected processed_at to advance: %v -> %v", first.ProcessedAt, second.ProcessedAt)
	}
	if got := countPayslips(t, pool, f.employees[0], f.period); got != 1 {
		t.Fatalf("expected exactly 1 payslip row, got %d", got)
	}
}

func TestStoreGetEmployeeNotFound(t *testing.T) {
	pool := testPool(t)
	store := NewStore(pool)

	_, err := store.GetEmployee(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestServiceBatchAndReportIntegration(t *testing.T) {
	pool := testPool(t)
	f := seedFixture(t, pool)
	service := NewService(NewStore(pool), t.TempDir())
	ctx := context.Background()

	result, err := service.GenerateMonthly(ctx, f.period)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("expected no failures, got %+v", result.Failures)
	}

	for _, id := range f.employees {
		if got := countPayslips(t, pool, id, f.period); got != 1 {
			t.Fatalf("employee %s: expected 1 payslip, got %d", id, got)
		}
	}

	// rerun must not duplicate
	if _, err := service.GenerateMonthly(ctx, f.period); err != nil {
		t.Fatalf("rerun failed: %v", err)
	}
	for _, id := range f.employees {
		if got := countPayslips(t, pool, id, f.period); got != 1 {
			t.Fatalf("employee %s after rerun: expected 1 payslip, got %d", id, got)
		}
	}

	report, err := service.CollectReport(ctx, f.period)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	engIdx, salesIdx := -1, -1
	for i, row := range report {
		switch row.DeptName {
		case f.engName:
			engIdx = i
		case f.salesName:
			salesIdx = i
		case f.emptyName:
			t.Fatalf("department without payslips must not appear: %+v", row)
		}
	}
	if engIdx == -1 || salesIdx == -1 {
		t.Fatalf("expected both departments in report, got %+v", report)
	}

	// Engineering nets 63000 + 83700, Sales nets 56700 + 88200
	eng, sales := report[engIdx], report[salesIdx]
	if !eng.TotalNet.Equal(dec(t, "146700")) {
		t.Fatalf("expected engineering total 146700, got %v", eng.TotalNet)
	}
	if eng.EmployeeCount != 2 {
		t.Fatalf("expected 2 engineering employees, got %d", eng.EmployeeCount)
	}
	if !eng.AvgNet.Equal(dec(t, "73350")) {
		t.Fatalf("expected engineering avg 73350, got %v", eng.AvgNet)
	}
	if !sales.TotalNet.Equal(dec(t, "144900")) {
		t.Fatalf("expected sales total 144900, got %v", sales.TotalNet)
	}
	if engIdx > salesIdx {
		t.Fatal("report is not ordered by total net descending")
	}
}

func TestProcessUnknownEmployeeWritesNothing(t *testing.T) {
	pool := testPool(t)
	f := seedFixture(t, pool)
	service := NewService(NewStore(pool), t.TempDir())

	ghost := uuid.NewString()
	_, err := service.CalculateSalary(context.Background(), ghost, f.period)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if got := countPayslips(t, pool, ghost, f.period); got != 0 {
		t.Fatalf("expected no payslip for unknown employee, got %d", got)
	}
}
