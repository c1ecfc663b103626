package repository

import (
	"context"
	"time"

	"auth-server/internal/domain"
)

// SessionRepository defines persistence operations for opaque session
// tokens. Expired rows are not removed on lookup; DeleteExpired exists for
// a periodic sweep.
type SessionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, session *domain.Session) error
	GetValid(ctx context.Context, token string, now time.Time) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
