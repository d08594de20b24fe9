package service

import (
	"context"
	"fmt"
	"strconv"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
	"backend/pkg/apperr"
)

// --- DTOs ---

type CreateRoleRequest struct {
	Name string `json:"role_name"`
}

type UpdateRoleRequest struct {
	Name string `json:"role_name"`
}

type AssignPermissionRequest struct {
	RoleID       *uint `json:"role_id"`
	PermissionID *uint `json:"permission_id"`
}

type RoleResponse struct {
	ID          uint                 `json:"role_id"`
	Name        string               `json:"role_name"`
	Status      string               `json:"status"`
	Permissions []PermissionResponse `json:"permissions,omitempty"`
}

type AssignmentResponse struct {
	ID           uint `json:"role_permission_id"`
	RoleID       uint `json:"role_id"`
	PermissionID uint `json:"permission_id"`
}

// --- Interface ---

type RoleService interface {
	Create(ctx context.Context, actorID string, req CreateRoleRequest) (*RoleResponse, error)
	List(ctx context.Context) ([]RoleResponse, error)
	Get(ctx context.Context, id uint) (*RoleResponse, error)
	Update(ctx context.Context, actorID string, id uint, req UpdateRoleRequest) (*RoleResponse, error)
	Delete(ctx context.Context, actorID string, id uint) error
	AssignPermission(ctx context.Context, actorID string, req AssignPermissionRequest) (*AssignmentResponse, error)
	ListRolePermissions(ctx context.Context, roleID uint) ([]PermissionResponse, error)
}

type roleService struct {
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
	assignmentRepo repository.AssignmentRepository
	accountRepo    repository.AccountRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	hub            *ws.Hub
}

// NewRoleService returns a new instance of RoleService
func NewRoleService(
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
	assignmentRepo repository.AssignmentRepository,
	accountRepo repository.AccountRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) RoleService {
	return &roleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		assignmentRepo: assignmentRepo,
		accountRepo:    accountRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		hub:            hub,
	}
}

// --- Implementation ---

func toRoleResponse(r model.Role) RoleResponse {
	res := RoleResponse{
		ID:     r.ID,
		Name:   r.Name,
		Status: r.Status,
	}
	for _, p := range r.Permissions {
		res.Permissions = append(res.Permissions, toPermissionResponse(p))
	}
	return res
}

func (s *roleService) Create(ctx context.Context, actorID string, req CreateRoleRequest) (*RoleResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("role name is required: %w", apperr.ErrValidation)
	}

	role := model.Role{
		Name:   req.Name,
		Status: model.StatusActive,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.Create(txCtx, &role); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionCreateRole, strconv.FormatUint(uint64(role.ID), 10), role.Name, req))
	})
	if err != nil {
		return nil, err
	}

	broadcastAudit(s.hub, model.ActionCreateRole, strconv.FormatUint(uint64(role.ID), 10), role.Name)

	res := toRoleResponse(role)
	return &res, nil
}

func (s *roleService) List(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

func (s *roleService) Get(ctx context.Context, id uint) (*RoleResponse, error) {
	role, err := s.roleRepo.GetByIDWithPermissions(ctx, id)
	if err != nil {
		return nil, err
	}

	res := toRoleResponse(*role)
	return &res, nil
}

func (s *roleService) Update(ctx context.Context, actorID string, id uint, req UpdateRoleRequest) (*RoleResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("role name is required: %w", apperr.ErrValidation)
	}

	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role.Name = req.Name

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.Update(txCtx, role); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionUpdateRole, strconv.FormatUint(uint64(role.ID), 10), role.Name, req))
	})
	if err != nil {
		return nil, err
	}

	broadcastAudit(s.hub, model.ActionUpdateRole, strconv.FormatUint(uint64(role.ID), 10), role.Name)

	res := toRoleResponse(*role)
	return &res, nil
}

func (s *roleService) Delete(ctx context.Context, actorID string, id uint) error {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		// A role referenced by any account must not disappear from under it.
		referenced, err := s.accountRepo.CountByRole(txCtx, id)
		if err != nil {
			return err
		}
		if referenced > 0 {
			return fmt.Errorf("role is referenced by %d account(s): %w", referenced, apperr.ErrConflict)
		}

		if err := s.assignmentRepo.DeleteByRole(txCtx, id); err != nil {
			return err
		}
		if err := s.roleRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionDeleteRole, strconv.FormatUint(uint64(id), 10), role.Name, nil))
	})
	if err != nil {
		return err
	}

	broadcastAudit(s.hub, model.ActionDeleteRole, strconv.FormatUint(uint64(id), 10), role.Name)
	return nil
}

func (s *roleService) AssignPermission(ctx context.Context, actorID string, req AssignPermissionRequest) (*AssignmentResponse, error) {
	if req.RoleID == nil || req.PermissionID == nil {
		return nil, fmt.Errorf("role_id and permission_id are required: %w", apperr.ErrValidation)
	}

	role, err := s.roleRepo.GetByID(ctx, *req.RoleID)
	if err != nil {
		return nil, err
	}
	permission, err := s.permissionRepo.GetByID(ctx, *req.PermissionID)
	if err != nil {
		return nil, err
	}

	assignment := model.RolePermission{
		RoleID:       role.ID,
		PermissionID: permission.ID,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assignmentRepo.Create(txCtx, &assignment); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionAssignPermission, strconv.FormatUint(uint64(assignment.ID), 10), role.Name+" -> "+permission.Name, req))
	})
	if err != nil {
		return nil, err
	}

	broadcastAudit(s.hub, model.ActionAssignPermission, strconv.FormatUint(uint64(assignment.ID), 10), role.Name+" -> "+permission.Name)

	return &AssignmentResponse{
		ID:           assignment.ID,
		RoleID:       assignment.RoleID,
		PermissionID: assignment.PermissionID,
	}, nil
}

func (s *roleService) ListRolePermissions(ctx context.Context, roleID uint) ([]PermissionResponse, error) {
	if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
		return nil, err
	}

	permissions, err := s.assignmentRepo.ListPermissionsForRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	res := make([]PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		res = append(res, toPermissionResponse(p))
	}
	return res, nil
}
