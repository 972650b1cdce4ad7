package ports

import (
	"context"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

// ListEmployeesInput mirrors ListUsersInput for the employee table. Search
// covers name, email, emp_id and department.
type ListEmployeesInput struct {
	ActorRole  string
	Search     string
	SortColumn string // name (default), email, emp_id, department, created_at
	SortOrder  string
	Page       int
}

// EmployeeListResult is one page of the derived employee list.
type EmployeeListResult struct {
	Items      []domain.Employee
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// CreateEmployeeInput carries the new record's field set. Creation also
// provisions the employee's document folder in object storage.
type CreateEmployeeInput struct {
	EmpID      string
	Name       string
	Email      string
	Department string
	Position   string
}

// UpdateEmployeeInput is a partial patch plus the acting actor's email.
type UpdateEmployeeInput struct {
	ID         string
	Name       *string
	Email      *string
	Department *string
	Position   *string
	ActorEmail string
}

// EmployeeService defines the employee management use cases.
type EmployeeService interface {
	ListEmployees(ctx context.Context, in ListEmployeesInput) (*EmployeeListResult, error)
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}
