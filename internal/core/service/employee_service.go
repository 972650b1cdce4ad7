package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staffdesk/admin-api/internal/api/metrics"
	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/listing"
	"github.com/staffdesk/admin-api/internal/core/ports"
	"github.com/staffdesk/admin-api/internal/reqstate"
)

// EmployeeService implements employee management. Creation is two-phase:
// the row insert is followed by provisioning a `.keep` placeholder under the
// employee's document folder. A provisioning failure fails the whole
// operation; the already-inserted row is not rolled back, so the record
// exists without its folder until retried out of band.
type EmployeeService struct {
	repo     ports.EmployeeRepository
	store    ports.ObjectStore
	bucket   string
	listRead *reqstate.Query[[]domain.Employee]
	notifier ports.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewEmployeeService(repo ports.EmployeeRepository, store ports.ObjectStore, bucket string, notifier ports.Notifier, logger zerolog.Logger) *EmployeeService {
	s := &EmployeeService{
		repo:     repo,
		store:    store,
		bucket:   bucket,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	s.listRead = reqstate.NewQuery(func(ctx context.Context) ([]domain.Employee, error) {
		return repo.List(ctx)
	})
	return s
}

// ListEmployees derives one page from the cached full list, admin only.
func (s *EmployeeService) ListEmployees(ctx context.Context, in ports.ListEmployeesInput) (*ports.EmployeeListResult, error) {
	if in.ActorRole != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	cacheResult := "refetch"
	if s.listRead.Fresh() {
		cacheResult = "hit"
	}
	metrics.ListReadsTotal.WithLabelValues("employee", cacheResult).Inc()

	employees, err := s.listRead.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load employee list")
		return nil, err
	}

	page := listing.Employees(employees, listing.Query{
		Search: in.Search,
		Sort: listing.SortSpec{
			Column:    in.SortColumn,
			Direction: sortDirection(in.SortOrder),
		},
		Page:     in.Page,
		PageSize: listing.DefaultPageSize,
	})

	return &ports.EmployeeListResult{
		Items:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetEmployee fetches one record. An empty id never reaches the repository.
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to load employee")
		return nil, err
	}
	return employee, nil
}

// CreateEmployee inserts the record, then provisions the document folder.
func (s *EmployeeService) CreateEmployee(ctx context.Context, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	if in.EmpID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := s.now().UTC()
	employee := &domain.Employee{
		UserID:     uuid.NewString(),
		EmpID:      in.EmpID,
		Name:       in.Name,
		Email:      in.Email,
		Department: in.Department,
		Position:   in.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Insert(ctx, employee)
	if err != nil {
		s.logger.Error().Err(err).Str("emp_id", in.EmpID).Msg("failed to create employee")
		metrics.MutationsTotal.WithLabelValues("employee", "create", "error").Inc()
		s.notify("Error", "Failed to create employee", ports.NotifyDestructive, in.EmpID)
		return nil, err
	}

	folder := created.FolderName()
	if err := s.store.Upload(ctx, s.bucket, folder+"/.keep", nil); err != nil {
		s.logger.Error().Err(err).
			Str("emp_id", created.EmpID).
			Str("folder", folder).
			Msg("failed to provision employee folder")
		metrics.FolderProvisionsTotal.WithLabelValues("error").Inc()
		metrics.MutationsTotal.WithLabelValues("employee", "create", "error").Inc()
		s.notify("Error", "Failed to create employee folder", ports.NotifyDestructive, created.EmpID)
		return nil, domain.ErrFolderProvision
	}

	s.listRead.Invalidate()
	metrics.FolderProvisionsTotal.WithLabelValues("ok").Inc()
	metrics.MutationsTotal.WithLabelValues("employee", "create", "ok").Inc()
	s.logger.Info().Str("user_id", created.UserID).Str("emp_id", created.EmpID).Str("folder", folder).Msg("employee created")
	s.notify("Success", "Employee created successfully", ports.NotifySuccess, created.UserID)
	return created, nil
}

// UpdateEmployee applies a partial patch, refreshing the update timestamp
// and stamping the acting actor.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	patch := ports.EmployeePatch{
		Name:       in.Name,
		Email:      in.Email,
		Department: in.Department,
		Position:   in.Position,
		UpdatedAt:  s.now().UTC(),
		UpdatedBy:  in.ActorEmail,
	}

	updated, err := s.repo.Update(ctx, in.ID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.ID).Msg("failed to update employee")
		metrics.MutationsTotal.WithLabelValues("employee", "update", "error").Inc()
		s.notify("Error", "Failed to update employee", ports.NotifyDestructive, in.ID)
		return nil, err
	}

	s.listRead.Invalidate()
	metrics.MutationsTotal.WithLabelValues("employee", "update", "ok").Inc()
	s.logger.Info().Str("user_id", in.ID).Str("updated_by", in.ActorEmail).Msg("employee updated")
	s.notify("Success", "Employee updated successfully", ports.NotifySuccess, in.ID)
	return updated, nil
}

// DeleteEmployee removes a record by id. The document folder is left in
// place for auditability.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete employee")
		metrics.MutationsTotal.WithLabelValues("employee", "delete", "error").Inc()
		s.notify("Error", "Failed to delete employee", ports.NotifyDestructive, id)
		return err
	}

	s.listRead.Invalidate()
	metrics.MutationsTotal.WithLabelValues("employee", "delete", "ok").Inc()
	s.logger.Info().Str("user_id", id).Msg("employee deleted")
	s.notify("Success", "Employee deleted successfully", ports.NotifySuccess, id)
	return nil
}

func (s *EmployeeService) notify(title, description, variant, subject string) {
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
