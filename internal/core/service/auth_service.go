package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/ports"
)

// AuthService implements login and logout. Every auth-state change is
// published as a session event so the identity provider can recompute the
// current actor.
type AuthService struct {
	repo      ports.UserRepository
	tokens    ports.TokenStore
	events    chan<- ports.SessionEvent
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenStore, events chan<- ports.SessionEvent, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		events:    events,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies the credentials and issues an HS256 token. Inactive
// accounts are rejected with the same error as bad credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user.Status != domain.StatusActive {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.publish(ports.SessionEvent{Type: ports.SessionSignedIn, UserID: user.UserID})
	s.logger.Info().Str("user_id", user.UserID).Str("email", user.Email).Msg("user logged in")
	return token, user, nil
}

// Logout revokes the presented token for its remaining lifetime. An already
// expired or malformed token is treated as signed out.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		s.publish(ports.SessionEvent{Type: ports.SessionSignedOut})
		return nil
	}

	jti, _ := claims["jti"].(string)
	if jti != "" {
		ttl := s.tokenTTL
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			ttl = time.Until(exp.Time)
		}
		if ttl > 0 {
			if err := s.tokens.Revoke(ctx, jti, ttl); err != nil {
				s.logger.Error().Err(err).Str("jti", jti).Msg("failed to revoke token")
				return err
			}
		}
	}

	s.publish(ports.SessionEvent{Type: ports.SessionSignedOut})
	s.logger.Info().Msg("user logged out")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"role":  user.Role,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// publish never blocks the auth path: a slow or absent subscriber drops the
// event rather than stalling login.
func (s *AuthService) publish(ev ports.SessionEvent) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.logger.Warn().Str("event", string(ev.Type)).Msg("session event dropped, subscriber not keeping up")
	}
}
