package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-server/internal/domain"
	"auth-server/internal/repository"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Username:     "alice",
		PasswordHash: "hash",
		Email:        "a@x.com",
		FirstName:    "A",
		LastName:     "Lice",
	}
	id, err := repo.Create(ctx, user, []string{domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.True(t, user.IsActive)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
	assert.Equal(t, "a@x.com", byName.Email)
	assert.True(t, byName.IsActive)
	assert.Nil(t, byName.LastLogin)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h1"}, []string{domain.RoleUser})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h2"}, []string{domain.RoleUser, domain.RoleAdmin})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	var users, assignments int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM user_roles`).Scan(&assignments))
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, assignments)
}

func TestUserRepositoryUnknownRoleRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h"}, []string{"ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// the user insert must have been rolled back with the failed assignment
	var users int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users))
	assert.Equal(t, 0, users)
}

func TestUserRepositoryUpdateLastLogin(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	id := seedUser(t, db, "alice")

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, id, at))

	user, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.WithinDuration(t, at, *user.LastLogin, time.Second)

	assert.ErrorIs(t, repo.UpdateLastLogin(ctx, 999, at), repository.ErrNotFound)
}
