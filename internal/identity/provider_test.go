package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) { return nil, nil }
func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (r *stubUserRepo) Update(context.Context, string, ports.UserPatch) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) Delete(context.Context, string) error { return nil }

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestProvider_SignInLooksUpRoleAndStatus(t *testing.T) {
	repo := &stubUserRepo{users: map[string]domain.User{
		"u1": {UserID: "u1", Username: "alice", Email: "alice@example.com", Role: domain.RoleAdmin, Status: domain.StatusActive},
	}}
	events := make(chan ports.SessionEvent, 1)
	p := NewProvider(repo, events, zerolog.Nop())
	p.Start()
	defer p.Close()

	if _, ok := p.Current(); ok {
		t.Fatalf("no actor expected before any event")
	}

	events <- ports.SessionEvent{Type: ports.SessionSignedIn, UserID: "u1"}
	waitFor(t, func() bool {
		actor, ok := p.Current()
		return ok && actor.Role == domain.RoleAdmin && actor.Status == domain.StatusActive
	})
}

func TestProvider_SignOutClearsActor(t *testing.T) {
	repo := &stubUserRepo{users: map[string]domain.User{
		"u1": {UserID: "u1", Role: domain.RoleAdmin, Status: domain.StatusActive},
	}}
	events := make(chan ports.SessionEvent, 2)
	p := NewProvider(repo, events, zerolog.Nop())
	p.Start()
	defer p.Close()

	events <- ports.SessionEvent{Type: ports.SessionSignedIn, UserID: "u1"}
	waitFor(t, func() bool { _, ok := p.Current(); return ok })

	events <- ports.SessionEvent{Type: ports.SessionSignedOut}
	waitFor(t, func() bool { _, ok := p.Current(); return !ok })
}

func TestProvider_LookupFailureClearsActor(t *testing.T) {
	repo := &stubUserRepo{users: map[string]domain.User{
		"u1": {UserID: "u1", Role: domain.RoleAdmin, Status: domain.StatusActive},
	}}
	events := make(chan ports.SessionEvent, 2)
	p := NewProvider(repo, events, zerolog.Nop())
	p.Start()
	defer p.Close()

	events <- ports.SessionEvent{Type: ports.SessionSignedIn, UserID: "u1"}
	waitFor(t, func() bool { _, ok := p.Current(); return ok })

	// A sign-in for an unknown id behaves like a failed side lookup.
	events <- ports.SessionEvent{Type: ports.SessionSignedIn, UserID: "ghost"}
	waitFor(t, func() bool { _, ok := p.Current(); return !ok })
}

func TestProvider_CloseIsIdempotentAndStopsConsuming(t *testing.T) {
	repo := &stubUserRepo{users: map[string]domain.User{}}
	events := make(chan ports.SessionEvent, 1)
	p := NewProvider(repo, events, zerolog.Nop())
	p.Start()

	p.Close()
	p.Close() // second close must not panic
}
