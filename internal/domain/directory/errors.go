package directory

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrInvalidEmployee    = errors.New("invalid employee")
	ErrDuplicateName      = errors.New("department name already exists")
)
