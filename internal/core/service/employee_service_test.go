package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/ports"
)

type stubEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]*domain.Employee
	order     []string
	listCalls int
}

func newStubEmployeeRepo(seed ...domain.Employee) *stubEmployeeRepo {
	r := &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
	for i := range seed {
		e := seed[i]
		r.employees[e.UserID] = &e
		r.order = append(r.order, e.UserID)
	}
	return r
}

func (r *stubEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := make([]domain.Employee, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.employees[id])
	}
	return out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) Insert(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *e
	r.employees[e.UserID] = &clone
	r.order = append(r.order, e.UserID)
	out := clone
	return &out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, id string, patch ports.EmployeePatch) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Email != nil {
		e.Email = *patch.Email
	}
	if patch.Department != nil {
		e.Department = *patch.Department
	}
	if patch.Position != nil {
		e.Position = *patch.Position
	}
	e.UpdatedAt = patch.UpdatedAt
	e.UpdatedBy = patch.UpdatedBy
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	for i, eid := range r.order {
		if eid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// stubObjectStore records uploads and can be told to fail them.
type stubObjectStore struct {
	mu        sync.Mutex
	uploads   []string // "<bucket>/<path>"
	buckets   []string
	uploadErr error
}

func (s *stubObjectStore) CreateBucket(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.buckets {
		if b == name {
			return domain.ErrBucketExists
		}
	}
	s.buckets = append(s.buckets, name)
	return nil
}

func (s *stubObjectStore) Upload(_ context.Context, bucket, path string, _ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploads = append(s.uploads, bucket+"/"+path)
	return nil
}

const testBucket = "user_documents"

func newEmployeeService(repo *stubEmployeeRepo, store *stubObjectStore) *EmployeeService {
	return NewEmployeeService(repo, store, testBucket, nil, zerolog.Nop())
}

func TestEmployeeService_CreateEmployee_ProvisionsFolder(t *testing.T) {
	repo := newStubEmployeeRepo()
	store := &stubObjectStore{}
	svc := newEmployeeService(repo, store)

	created, err := svc.CreateEmployee(context.Background(), ports.CreateEmployeeInput{
		EmpID: "EMP-007!",
		Name:  "James",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := testBucket + "/employee_emp_007_/.keep"
	if len(store.uploads) != 1 || store.uploads[0] != want {
		t.Fatalf("placeholder upload %v, want [%s]", store.uploads, want)
	}
	if created.EmpID != "EMP-007!" {
		t.Fatalf("created record: %+v", created)
	}
}

func TestEmployeeService_CreateEmployee_UploadFailureFailsWholeOp(t *testing.T) {
	repo := newStubEmployeeRepo()
	store := &stubObjectStore{uploadErr: errors.New("bucket quota exceeded")}
	svc := newEmployeeService(repo, store)

	_, err := svc.CreateEmployee(context.Background(), ports.CreateEmployeeInput{
		EmpID: "E1",
		Name:  "Ada",
	})
	if !errors.Is(err, domain.ErrFolderProvision) {
		t.Fatalf("expected ErrFolderProvision, got %v", err)
	}

	// The inserted row is not rolled back: the record persists without its
	// folder until retried out of band.
	rows, _ := repo.List(context.Background())
	if len(rows) != 1 {
		t.Fatalf("inserted row must persist after upload failure, got %d rows", len(rows))
	}
}

func TestEmployeeService_ListEmployees_AdminGateAndCache(t *testing.T) {
	repo := newStubEmployeeRepo(
		domain.Employee{UserID: "e1", EmpID: "E1", Name: "Alice Eng", Department: "engineering"},
		domain.Employee{UserID: "e2", EmpID: "E2", Name: "Bob Ops", Department: "operations"},
	)
	svc := newEmployeeService(repo, &stubObjectStore{})
	ctx := context.Background()

	if _, err := svc.ListEmployees(ctx, ports.ListEmployeesInput{ActorRole: domain.RoleUser}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if repo.listCalls != 0 {
		t.Fatalf("unauthorized list must not touch the repo")
	}

	admin := ports.ListEmployeesInput{ActorRole: domain.RoleAdmin}
	res, err := svc.ListEmployees(ctx, admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("total %d, want 2", res.Total)
	}

	if _, err := svc.ListEmployees(ctx, admin); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("second list must be served from cache, got %d calls", repo.listCalls)
	}

	if err := svc.DeleteEmployee(ctx, "e1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	after, err := svc.ListEmployees(ctx, admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listCalls != 2 || after.Total != 1 {
		t.Fatalf("delete must invalidate the cached list (calls %d, total %d)", repo.listCalls, after.Total)
	}
}

func TestEmployeeService_GetEmployee_EmptyID(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo(), &stubObjectStore{})
	_, err := svc.GetEmployee(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEmployeeService_UpdateEmployee_PartialPatch(t *testing.T) {
	repo := newStubEmployeeRepo(domain.Employee{
		UserID: "e1", EmpID: "E1", Name: "Alice", Email: "alice@corp.io", Department: "engineering",
	})
	svc := newEmployeeService(repo, &stubObjectStore{})

	dept := "platform"
	updated, err := svc.UpdateEmployee(context.Background(), ports.UpdateEmployeeInput{
		ID:         "e1",
		Department: &dept,
		ActorEmail: "admin@corp.io",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Department != "platform" {
		t.Fatalf("patched field not applied: %+v", updated)
	}
	if updated.Name != "Alice" || updated.Email != "alice@corp.io" {
		t.Fatalf("unpatched fields must be untouched: %+v", updated)
	}
	if updated.UpdatedBy != "admin@corp.io" {
		t.Fatalf("actor not stamped: %q", updated.UpdatedBy)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatalf("update timestamp not refreshed")
	}
}
