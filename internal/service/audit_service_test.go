package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuditLogsNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.permissionService.Create(ctx, "", CreatePermissionRequest{Name: "first", Description: "d"})
	require.NoError(t, err)
	_, err = f.roleService.Create(ctx, "", CreateRoleRequest{Name: "second"})
	require.NoError(t, err)

	logs, total, err := f.auditService.GetAuditLogs(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ActionCreateRole, logs[0].Action)
	assert.Equal(t, model.ActionCreatePermission, logs[1].Action)

	// No actor recorded, so the entry is attributed to the system.
	assert.Equal(t, "System", logs[0].UserName)
}

func TestGetAuditLogsActorName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	role := f.seedRole("staff")
	account := f.seedAccount("11111", "a@example.com", "longenough1", role.ID)

	_, err := f.permissionService.Create(ctx, account.AccountID, CreatePermissionRequest{Name: "p", Description: "d"})
	require.NoError(t, err)

	// The fake audit repo stores the actor id; resolve the account for the view.
	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	require.NotNil(t, entry.AccountID)
	acc := f.accounts.items[*entry.AccountID]
	entry.Account = acc

	logs, _, err := f.auditService.GetAuditLogs(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, acc.UserName, logs[0].UserName)
	assert.Equal(t, account.AccountID, logs[0].AccountID)
}
