package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTwoUsers(t *testing.T, r testRepos) (alice, bob int64) {
	t.Helper()
	svc := NewUserService(r.users, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateUserInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateUserInput{Username: "bob", Password: "password1"})
	require.NoError(t, err)
	return a.ID, b.ID
}

func TestTaskServiceOwnershipChecks(t *testing.T) {
	r := newTestRepos(t)
	tasks := NewTaskService(r.tasks)
	ctx := context.Background()
	alice, bob := seedTwoUsers(t, r)

	task, err := tasks.Create(ctx, alice, "fix the door")
	require.NoError(t, err)

	_, err = tasks.Create(ctx, alice, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	// owner and admin may read; another plain user may not
	_, err = tasks.Get(ctx, Actor{UserID: alice}, task.ID)
	assert.NoError(t, err)
	_, err = tasks.Get(ctx, Actor{UserID: bob}, task.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = tasks.Get(ctx, Actor{UserID: bob, Admin: true}, task.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, tasks.Delete(ctx, Actor{UserID: bob}, task.ID), ErrForbidden)
	require.NoError(t, tasks.Delete(ctx, Actor{UserID: alice}, task.ID))
}

func TestTaskServiceSharedOwnership(t *testing.T) {
	r := newTestRepos(t)
	tasks := NewTaskService(r.tasks)
	ctx := context.Background()
	alice, bob := seedTwoUsers(t, r)

	task, err := tasks.Create(ctx, alice, "shared chore")
	require.NoError(t, err)
	require.NoError(t, tasks.AddOwner(ctx, task.ID, bob))

	_, err = tasks.Get(ctx, Actor{UserID: bob}, task.ID)
	assert.NoError(t, err)

	owned, err := tasks.ListOwned(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestTaskServiceListOwnedEmpty(t *testing.T) {
	r := newTestRepos(t)
	tasks := NewTaskService(r.tasks)
	alice, _ := seedTwoUsers(t, r)

	owned, err := tasks.ListOwned(context.Background(), alice)
	require.NoError(t, err)
	assert.NotNil(t, owned)
	assert.Empty(t, owned)
}

func TestRequestServiceSolicitorChecks(t *testing.T) {
	r := newTestRepos(t)
	requests := NewRequestService(r.requests)
	ctx := context.Background()
	alice, bob := seedTwoUsers(t, r)

	request, err := requests.Create(ctx, alice, "need a ladder")
	require.NoError(t, err)

	_, err = requests.Create(ctx, alice, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = requests.Get(ctx, Actor{UserID: alice}, request.ID)
	assert.NoError(t, err)
	_, err = requests.Get(ctx, Actor{UserID: bob}, request.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	mine, err := requests.ListOwn(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.ErrorIs(t, requests.Delete(ctx, Actor{UserID: bob}, request.ID), ErrForbidden)
	require.NoError(t, requests.Delete(ctx, Actor{UserID: bob, Admin: true}, request.ID))
}
