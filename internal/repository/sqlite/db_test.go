package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"auth-server/internal/auth"
	"auth-server/internal/domain"
)

// newTestDB opens an in-memory database with the full schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON;`)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewRoleRepository(db).Init(ctx))
	require.NoError(t, NewSessionRepository(db).Init(ctx))
	require.NoError(t, NewTaskRepository(db).Init(ctx))
	require.NoError(t, NewRequestRepository(db).Init(ctx))

	return db
}

// seedUser inserts a user with the default role and returns its id.
func seedUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	hash, err := auth.HashPassword("password-for-" + username)
	require.NoError(t, err)

	id, err := NewUserRepository(db).Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: hash,
	}, []string{domain.RoleUser})
	require.NoError(t, err)
	return id
}
