package directory

import "context"

type StoreAPI interface {
	InsertDepartment(ctx context.Context, dept Department) error
	ListDepartments(ctx context.Context) ([]Department, error)
	InsertEmployee(ctx context.Context, employee Employee) error
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	UpdateEmployee(ctx context.Context, employee Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}
