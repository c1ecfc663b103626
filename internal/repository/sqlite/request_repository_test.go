package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-server/internal/domain"
	"auth-server/internal/repository"
)

func TestRequestRepositoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	id, err := repo.Create(ctx, &domain.Request{Description: "need a ladder", SolicitorID: alice})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Request{Description: "need paint", SolicitorID: bob})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "need a ladder", got.Description)
	assert.Equal(t, alice, got.SolicitorID)

	mine, err := repo.ListBySolicitor(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, id, mine[0].ID)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
