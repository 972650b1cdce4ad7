package ports

import (
	"context"
	"time"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

// UserPatch is a partial update. Nil fields are left unchanged; UpdatedAt
// and UpdatedBy are always written.
type UserPatch struct {
	Username     *string
	Email        *string
	Role         *string
	Status       *string
	PasswordHash *string
	UpdatedAt    time.Time
	UpdatedBy    string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// List returns all users in store order.
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
