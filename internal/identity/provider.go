// Package identity tracks the current authenticated actor. A Provider is a
// long-lived subscription to session events: on sign-in it looks up the
// actor's role and status against the users store, on sign-out (or a failed
// lookup) it clears the actor. Lifecycle is explicit: Start begins
// consuming, Close tears the subscription down exactly once.
package identity

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/admin-api/internal/core/ports"
)

const lookupTimeout = 5 * time.Second

// Actor is the snapshot of the signed-in operator. Role and status come
// from the side lookup, not from the session token, so a role change takes
// effect on the next auth-state change.
type Actor struct {
	UserID   string
	Username string
	Email    string
	Role     string
	Status   string
}

// Provider consumes session events and maintains the current actor.
type Provider struct {
	repo   ports.UserRepository
	events <-chan ports.SessionEvent
	logger zerolog.Logger

	mu    sync.RWMutex
	actor *Actor

	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

func NewProvider(repo ports.UserRepository, events <-chan ports.SessionEvent, logger zerolog.Logger) *Provider {
	return &Provider{
		repo:     repo,
		events:   events,
		logger:   logger,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start launches the subscription loop. Call Close to stop it.
func (p *Provider) Start() {
	go p.run()
}

// Close stops the subscription and waits for the loop to exit. Safe to call
// more than once.
func (p *Provider) Close() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	<-p.finished
}

// Current returns the actor snapshot, or false when nobody is signed in.
func (p *Provider) Current() (Actor, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.actor == nil {
		return Actor{}, false
	}
	return *p.actor, true
}

func (p *Provider) run() {
	defer close(p.finished)
	for {
		select {
		case <-p.done:
			return
		case ev, ok := <-p.events:
			if !ok {
				return
			}
			p.handle(ev)
		}
	}
}

func (p *Provider) handle(ev ports.SessionEvent) {
	if ev.Type != ports.SessionSignedIn {
		p.clear()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	user, err := p.repo.FindByID(ctx, ev.UserID)
	if err != nil {
		p.logger.Error().Err(err).Str("user_id", ev.UserID).Msg("actor lookup failed, clearing identity")
		p.clear()
		return
	}

	p.mu.Lock()
	p.actor = &Actor{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Status:   user.Status,
	}
	p.mu.Unlock()
}

func (p *Provider) clear() {
	p.mu.Lock()
	p.actor = nil
	p.mu.Unlock()
}
