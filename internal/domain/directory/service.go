package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) CreateDepartment(ctx context.Context, name string) (Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Department{}, fmt.Errorf("%w: department name must not be empty", ErrInvalidEmployee)
	}
	dept := Department{ID: uuid.NewString(), Name: name}
	if err := s.store.InsertDepartment(ctx, dept); err != nil {
		return Department{}, err
	}
	return dept, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

// CreateEmployee validates the attributes, fills in the 30/10/10 rate
// defaults for omitted rates and persists the record.
func (s *Service) CreateEmployee(ctx context.Context, params NewEmployee) (Employee, error) {
	employee, err := buildEmployee(params)
	if err != nil {
		return Employee{}, err
	}
	if err := s.store.InsertEmployee(ctx, employee); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

// UpdateEmployeeRates changes the rate components of an existing employee.
// Only non-nil fields are applied; the same validation as creation holds.
func (s *Service) UpdateEmployeeRates(ctx context.Context, id string, update RateUpdate) (Employee, error) {
	employee, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return Employee{}, err
	}

	if update.BasicSalary != nil {
		employee.BasicSalary = *update.BasicSalary
	}
	if update.HRAPercent != nil {
		employee.HRAPercent = *update.HRAPercent
	}
	if update.BonusPercent != nil {
		employee.BonusPercent = *update.BonusPercent
	}
	if update.TaxPercent != nil {
		employee.TaxPercent = *update.TaxPercent
	}

	if err := validateRates(employee.BasicSalary, employee.HRAPercent, employee.BonusPercent, employee.TaxPercent); err != nil {
		return Employee{}, err
	}
	if err := s.store.UpdateEmployee(ctx, employee); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	return s.store.DeleteEmployee(ctx, id)
}

func buildEmployee(params NewEmployee) (Employee, error) {
	employee := Employee{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(params.FullName),
		BasicSalary:  params.BasicSalary,
		HRAPercent:   DefaultHRAPercent,
		BonusPercent: DefaultBonusPercent,
		TaxPercent:   DefaultTaxPercent,
		DepartmentID: params.DepartmentID,
		JoinedOn:     params.JoinedOn,
	}
	if params.HRAPercent != nil {
		employee.HRAPercent = *params.HRAPercent
	}
	if params.BonusPercent != nil {
		employee.BonusPercent = *params.BonusPercent
	}
	if params.TaxPercent != nil {
		employee.TaxPercent = *params.TaxPercent
	}
	if employee.JoinedOn.IsZero() {
		employee.JoinedOn = time.Now().UTC()
	}

	if employee.FullName == "" {
		return Employee{}, fmt.Errorf("%w: full name must not be empty", ErrInvalidEmployee)
	}
	if err := validateRates(employee.BasicSalary, employee.HRAPercent, employee.BonusPercent, employee.TaxPercent); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func validateRates(basic, hra, bonus, tax decimal.Decimal) error {
	if !basic.IsPositive() {
		return fmt.Errorf("%w: basic salary %s must be positive", ErrInvalidEmployee, basic)
	}
	for _, rate := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"hra percent", hra},
		{"bonus percent", bonus},
		{"tax percent", tax},
	} {
		if rate.value.IsNegative() {
			return fmt.Errorf("%w: %s %s must not be negative", ErrInvalidEmployee, rate.name, rate.value)
		}
	}
	return nil
}
