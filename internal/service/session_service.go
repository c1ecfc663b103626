package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"auth-server/internal/domain"
	"auth-server/internal/repository"
)

// DefaultSessionTTL matches the historical one-day session lifetime.
const DefaultSessionTTL = 24 * time.Hour

// SessionService issues, validates, and revokes opaque session tokens.
// Validation never extends expiry and never deletes expired rows; those are
// purged separately.
type SessionService interface {
	Create(ctx context.Context, userID int64) (*domain.Session, error)
	Validate(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(sessions repository.SessionRepository, ttl time.Duration) SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionService{
		sessions: sessions,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *sessionService) Create(ctx context.Context, userID int64) (*domain.Session, error) {
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrSessionInvalid
	}
	session, err := s.sessions.GetValid(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrSessionInvalid
		}
		return 0, err
	}
	return session.UserID, nil
}

func (s *sessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionInvalid
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionInvalid
		}
		return err
	}
	return nil
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
