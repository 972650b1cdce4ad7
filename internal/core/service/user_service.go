package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/admin-api/internal/api/metrics"
	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/listing"
	"github.com/staffdesk/admin-api/internal/core/ports"
	"github.com/staffdesk/admin-api/internal/reqstate"
)

// UserService implements user management. The full list is read through a
// cached query that every mutation invalidates, so list reads stay cheap
// between writes and fresh after them.
type UserService struct {
	repo     ports.UserRepository
	listRead *reqstate.Query[[]domain.User]
	notifier ports.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewUserService(repo ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *UserService {
	s := &UserService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	s.listRead = reqstate.NewQuery(func(ctx context.Context) ([]domain.User, error) {
		return repo.List(ctx)
	})
	return s
}

// ListUsers derives one page from the cached full list. The admin predicate
// is checked first; a non-admin actor is rejected before any store access.
func (s *UserService) ListUsers(ctx context.Context, in ports.ListUsersInput) (*ports.UserListResult, error) {
	if in.ActorRole != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	cacheResult := "refetch"
	if s.listRead.Fresh() {
		cacheResult = "hit"
	}
	metrics.ListReadsTotal.WithLabelValues("user", cacheResult).Inc()

	users, err := s.listRead.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load user list")
		return nil, err
	}

	page := listing.Users(users, listing.Query{
		Search: in.Search,
		Role:   in.Role,
		Status: in.Status,
		Sort: listing.SortSpec{
			Column:    in.SortColumn,
			Direction: sortDirection(in.SortOrder),
		},
		Page:     in.Page,
		PageSize: listing.DefaultPageSize,
	})

	return &ports.UserListResult{
		Items:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetUser fetches one user. An empty id never reaches the repository.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to load user")
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new account. Timestamps are stamped from the service
// clock at submission time; skew against the store clock is accepted.
func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRole(in.Role) || !domain.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		Role:         in.Role,
		Status:       in.Status,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		metrics.MutationsTotal.WithLabelValues("user", "create", "error").Inc()
		s.notify("Error", "Failed to create user", ports.NotifyDestructive, in.Username)
		return nil, err
	}

	s.listRead.Invalidate()
	metrics.MutationsTotal.WithLabelValues("user", "create", "ok").Inc()
	s.logger.Info().Str("user_id", created.UserID).Str("username", created.Username).Msg("user created")
	s.notify("Success", "User created successfully", ports.NotifySuccess, created.UserID)
	return created, nil
}

// UpdateUser applies the edit form's field set. A blank password leaves the
// stored hash unchanged; the update timestamp and acting actor are always
// refreshed.
func (s *UserService) UpdateUser(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRole(in.Role) || !domain.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}

	patch := ports.UserPatch{
		Username:  &in.Username,
		Email:     &in.Email,
		Role:      &in.Role,
		Status:    &in.Status,
		UpdatedAt: s.now().UTC(),
		UpdatedBy: in.ActorEmail,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, in.ID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.ID).Msg("failed to update user")
		metrics.MutationsTotal.WithLabelValues("user", "update", "error").Inc()
		s.notify("Error", "Failed to update user", ports.NotifyDestructive, in.ID)
		return nil, err
	}

	s.listRead.Invalidate()
	metrics.MutationsTotal.WithLabelValues("user", "update", "ok").Inc()
	s.logger.Info().Str("user_id", in.ID).Str("updated_by", in.ActorEmail).Msg("user updated")
	s.notify("Success", "User updated successfully", ports.NotifySuccess, in.ID)
	return updated, nil
}

// DeleteUser removes an account by id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		metrics.MutationsTotal.WithLabelValues("user", "delete", "error").Inc()
		s.notify("Error", "Failed to delete user", ports.NotifyDestructive, id)
		return err
	}

	s.listRead.Invalidate()
	metrics.MutationsTotal.WithLabelValues("user", "delete", "ok").Inc()
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	s.notify("Success", "User deleted successfully", ports.NotifySuccess, id)
	return nil
}

func (s *UserService) notify(title, description, variant, subject string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ports.Notification{
		Title:       title,
		Description: description,
		Variant:     variant,
		Subject:     subject,
	})
}

func sortDirection(order string) listing.Direction {
	if order == string(listing.Desc) {
		return listing.Desc
	}
	return listing.Asc
}
