package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auth-server/internal/domain"
	"auth-server/internal/repository"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
	session_token TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	expires_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
`

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSessionsTable); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	session.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (session_token, user_id, expires_at, created_at)
VALUES (?, ?, ?, ?)`,
		session.Token,
		session.UserID,
		session.ExpiresAt.UTC(),
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetValid returns the session iff it exists and has not expired. Expired
// rows are left in place for DeleteExpired.
func (r *SessionRepository) GetValid(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	var session domain.Session
	err := r.db.QueryRowContext(ctx, `
SELECT session_token, user_id, expires_at, created_at
FROM sessions
WHERE session_token = ? AND expires_at > ?`,
		token, now.UTC(),
	).Scan(&session.Token, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expired sessions rows affected: %w", err)
	}
	return n, nil
}
