package directory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeStore struct {
	departments map[string]Department
	employees   map[string]Employee
}

func newFakeStore() *fakeStore {
	return &fakeStore{departments: map[string]Department{}, employees: map[string]Employee{}}
}

func (f *fakeStore) InsertDepartment(ctx context.Context, dept Department) error {
	for _, existing := range f.departments {
		if existing.Name == dept.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, dept.Name)
		}
	}
	f.departments[dept.ID] = dept
	return nil
}

func (f *fakeStore) ListDepartments(ctx context.Context) ([]Department, error) {
	var departments []Department
	for _, dept := range f.departments {
		departments = append(departments, dept)
	}
	return departments, nil
}

func (f *fakeStore) InsertEmployee(ctx context.Context, employee Employee) error {
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeStore) GetEmployee(ctx context.Context, id string) (Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return Employee{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	return e, nil
}

func (f *fakeStore) ListEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	for _, e := range f.employees {
		employees = append(employees, e)
	}
	return employees, nil
}

func (f *fakeStore) UpdateEmployee(ctx context.Context, employee Employee) error {
	if _, ok := f.employees[employee.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, employee.ID)
	}
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeStore) DeleteEmployee(ctx context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	delete(f.employees, id)
	return nil
}

func decValue(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := decValue(t, s)
	return &d
}

func TestCreateEmployeeAppliesRateDefaults(t *testing.T) {
	service := NewService(newFakeStore())

	employee, err := service.CreateEmployee(context.Background(), NewEmployee{
		FullName:    "Asha Verma",
		BasicSalary: decValue(t, "50000"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !employee.HRAPercent.Equal(decValue(t, "30")) {
		t.Fatalf("expected default hra 30, got %v", employee.HRAPercent)
	}
	if !employee.BonusPercent.Equal(decValue(t, "10")) {
		t.Fatalf("expected default bonus 10, got %v", employee.BonusPercent)
	}
	if !employee.TaxPercent.Equal(decValue(t, "10")) {
		t.Fatalf("expected default tax 10, got %v", employee.TaxPercent)
	}
	if employee.ID == "" {
		t.Fatal("expected a generated id")
	}
	if employee.JoinedOn.IsZero() {
		t.Fatal("expected a join date")
	}
}

func TestCreateEmployeeKeepsExplicitRates(t *testing.T) {
	service := NewService(newFakeStore())

	employee, err := service.CreateEmployee(context.Background(), NewEmployee{
		FullName:     "Ravi Nair",
		BasicSalary:  decValue(t, "60000"),
		HRAPercent:   decPtr(t, "40"),
		BonusPercent: decPtr(t, "15"),
		TaxPercent:   decPtr(t, "0"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !employee.HRAPercent.Equal(decValue(t, "40")) {
		t.Fatalf("expected hra 40, got %v", employee.HRAPercent)
	}
	if !employee.BonusPercent.Equal(decValue(t, "15")) {
		t.Fatalf("expected bonus 15, got %v", employee.BonusPercent)
	}
	if !employee.TaxPercent.IsZero() {
		t.Fatalf("explicit zero tax must be kept, got %v", employee.TaxPercent)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	service := NewService(newFakeStore())

	cases := []struct {
		name   string
		params NewEmployee
	}{
		{"zero basic", NewEmployee{FullName: "X", BasicSalary: decimal.Zero}},
		{"negative basic", NewEmployee{FullName: "X", BasicSalary: decValue(t, "-1")}},
		{"negative hra", NewEmployee{FullName: "X", BasicSalary: decValue(t, "1000"), HRAPercent: decPtr(t, "-5")}},
		{"negative tax", NewEmployee{FullName: "X", BasicSalary: decValue(t, "1000"), TaxPercent: decPtr(t, "-1")}},
		{"empty name", NewEmployee{FullName: "  ", BasicSalary: decValue(t, "1000")}},
	}
	for _, tc := range cases {
		if _, err := service.CreateEmployee(context.Background(), tc.params); !errors.Is(err, ErrInvalidEmployee) {
			t.Fatalf("%s: expected ErrInvalidEmployee, got %v", tc.name, err)
		}
	}
}

func TestUpdateEmployeeRates(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	employee, err := service.CreateEmployee(context.Background(), NewEmployee{
		FullName:    "Meera Iyer",
		BasicSalary: decValue(t, "45000"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.UpdateEmployeeRates(context.Background(), employee.ID, RateUpdate{
		HRAPercent: decPtr(t, "35"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.HRAPercent.Equal(decValue(t, "35")) {
		t.Fatalf("expected hra 35, got %v", updated.HRAPercent)
	}
	if !updated.BonusPercent.Equal(decValue(t, "10")) {
		t.Fatalf("untouched bonus changed: %v", updated.BonusPercent)
	}

	if _, err := service.UpdateEmployeeRates(context.Background(), employee.ID, RateUpdate{
		BasicSalary: decPtr(t, "0"),
	}); !errors.Is(err, ErrInvalidEmployee) {
		t.Fatalf("expected ErrInvalidEmployee for zero basic, got %v", err)
	}
}

func TestUpdateUnknownEmployee(t *testing.T) {
	service := NewService(newFakeStore())
	if _, err := service.UpdateEmployeeRates(context.Background(), "ghost", RateUpdate{}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestCreateDepartmentRejectsEmptyName(t *testing.T) {
	service := NewService(newFakeStore())
	if _, err := service.CreateDepartment(context.Background(), "  "); !errors.Is(err, ErrInvalidEmployee) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
