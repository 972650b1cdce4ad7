package ports

import (
	"context"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

// AuthService authenticates operators and manages their session tokens.
type AuthService interface {
	// Login verifies credentials and returns a signed token plus the user.
	// Inactive users cannot log in.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the presented token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
}
