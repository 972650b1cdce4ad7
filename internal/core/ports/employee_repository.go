package ports

import (
	"context"
	"time"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

// EmployeePatch is a partial update. Nil fields are left unchanged;
// UpdatedAt and UpdatedBy are always written.
type EmployeePatch struct {
	Name       *string
	Email      *string
	Department *string
	Position   *string
	UpdatedAt  time.Time
	UpdatedBy  string
}

// EmployeeRepository defines persistence operations for employees.
type EmployeeRepository interface {
	// List returns all employees in store order.
	List(ctx context.Context) ([]domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	Insert(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, id string, patch EmployeePatch) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
