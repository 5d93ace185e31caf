package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/testutil"
)

func TestRoleRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRoleRepository(db)
	ctx := context.Background()

	role := &model.Role{Name: "Cashier"}
	require.NoError(t, repo.Create(ctx, role))
	assert.NotEqual(t, uuid.Nil, role.ID)
}

func TestRoleRepository_GetByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRoleRepository(db)
	ctx := context.Background()

	role := &model.Role{Name: "Shift Lead"}
	require.NoError(t, repo.Create(ctx, role))

	found, err := repo.GetByName(ctx, "Shift Lead")
	require.NoError(t, err)
	assert.Equal(t, role.ID, found.ID)
}

func TestRoleRepository_GetByName_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRoleRepository(db)

	_, err := repo.GetByName(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, repository.ErrRoleNotFound)
}

func TestRoleRepository_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRoleRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrRoleNotFound)
}
