package ports

import (
	"context"

	"github.com/staffdesk/admin-api/internal/core/domain"
)

// ListUsersInput carries the list-view state plus the acting role used by
// the authorization predicate.
type ListUsersInput struct {
	ActorRole  string
	Search     string
	Role       string // "", "all", or an exact role
	Status     string // "", "all", or an exact status
	SortColumn string // username (default), email, role, status, created_at
	SortOrder  string // asc (default) or desc
	Page       int    // 1-based
}

// UserListResult is one page of the derived list.
type UserListResult struct {
	Items      []domain.User
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// CreateUserInput carries the new account's field set. Timestamps are
// stamped by the service at submission time.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	Status   string
}

// UpdateUserInput is the edit form's full field set. A blank Password means
// "leave unchanged". ActorEmail is stamped as the last-updating actor.
type UpdateUserInput struct {
	ID         string
	Username   string
	Email      string
	Role       string
	Status     string
	Password   string
	ActorEmail string
}

// UserService defines the user management use cases.
type UserService interface {
	ListUsers(ctx context.Context, in ListUsersInput) (*UserListResult, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
