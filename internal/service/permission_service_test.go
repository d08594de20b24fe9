package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.permissionService.Create(ctx, "00001", CreatePermissionRequest{
		Name:        "manage_orders",
		Description: "Create and edit orders",
	})
	require.NoError(t, err)
	assert.Equal(t, "manage_orders", created.Name)
	assert.Equal(t, model.StatusActive, created.Status)
	assert.NotZero(t, created.ID)

	// Recorded in the audit trail.
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, model.ActionCreatePermission, f.audit.entries[0].Action)
}

func TestPermissionCreateEmptyName(t *testing.T) {
	f := newFixture()

	_, err := f.permissionService.Create(context.Background(), "00001", CreatePermissionRequest{Description: "missing name"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPermissionCreateDuplicateName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.permissionService.Create(ctx, "00001", CreatePermissionRequest{Name: "manage_orders", Description: "first"})
	require.NoError(t, err)

	_, err = f.permissionService.Create(ctx, "00001", CreatePermissionRequest{Name: "manage_orders", Description: "second"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestPermissionListCreationOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		_, err := f.permissionService.Create(ctx, "00001", CreatePermissionRequest{Name: name, Description: name})
		require.NoError(t, err)
	}

	list, err := f.permissionService.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "beta", list[1].Name)
	assert.Equal(t, "gamma", list[2].Name)
}

func TestPermissionToggleStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.permissionService.Create(ctx, "00001", CreatePermissionRequest{Name: "manage_orders", Description: "d"})
	require.NoError(t, err)

	toggled, err := f.permissionService.Update(ctx, "00001", created.ID, UpdatePermissionRequest{ToggleStatus: true})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDisabled, toggled.Status)

	// Toggling twice lands back on the original value.
	toggled, err = f.permissionService.Update(ctx, "00001", created.ID, UpdatePermissionRequest{ToggleStatus: true})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, toggled.Status)
}

func TestPermissionUpdateEmptyName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.permissionService.Create(ctx, "00001", CreatePermissionRequest{Name: "manage_orders", Description: "d"})
	require.NoError(t, err)

	empty := ""
	_, err = f.permissionService.Update(ctx, "00001", created.ID, UpdatePermissionRequest{Name: &empty})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPermissionUpdateMissing(t *testing.T) {
	f := newFixture()

	_, err := f.permissionService.Update(context.Background(), "00001", 42, UpdatePermissionRequest{ToggleStatus: true})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPermissionDeleteCascadesAssignments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	role := f.seedRole("staff")
	created, err := f.permissionService.Create(ctx, "00001", CreatePermissionRequest{Name: "manage_orders", Description: "d"})
	require.NoError(t, err)

	_, err = f.roleService.AssignPermission(ctx, "00001", AssignPermissionRequest{RoleID: &role.ID, PermissionID: &created.ID})
	require.NoError(t, err)

	require.NoError(t, f.permissionService.Delete(ctx, "00001", created.ID))

	perms, err := f.roleService.ListRolePermissions(ctx, role.ID)
	require.NoError(t, err)
	assert.Empty(t, perms)
}
