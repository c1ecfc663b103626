package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"auth-server/internal/repository"
	"auth-server/internal/repository/sqlite"
)

type testRepos struct {
	db       *sql.DB
	users    repository.UserRepository
	roles    repository.RoleRepository
	sessions repository.SessionRepository
	tasks    repository.TaskRepository
	requests repository.RequestRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON;`)
	require.NoError(t, err)

	r := testRepos{
		db:       db,
		users:    sqlite.NewUserRepository(db),
		roles:    sqlite.NewRoleRepository(db),
		sessions: sqlite.NewSessionRepository(db),
		tasks:    sqlite.NewTaskRepository(db),
		requests: sqlite.NewRequestRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, r.users.Init(ctx))
	require.NoError(t, r.roles.Init(ctx))
	require.NoError(t, r.sessions.Init(ctx))
	require.NoError(t, r.tasks.Init(ctx))
	require.NoError(t, r.requests.Init(ctx))

	return r
}
