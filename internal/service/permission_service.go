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

type CreatePermissionRequest struct {
	Name        string `json:"permission_name"`
	Description string `json:"description"`
}

type UpdatePermissionRequest struct {
	Name         *string `json:"permission_name"`
	Description  *string `json:"description"`
	ToggleStatus bool    `json:"toggle_status"`
}

type PermissionResponse struct {
	ID          uint   `json:"permission_id"`
	Name        string `json:"permission_name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// --- Interface ---

type PermissionService interface {
	Create(ctx context.Context, actorID string, req CreatePermissionRequest) (*PermissionResponse, error)
	List(ctx context.Context) ([]PermissionResponse, error)
	Update(ctx context.Context, actorID string, id uint, req UpdatePermissionRequest) (*PermissionResponse, error)
	Delete(ctx context.Context, actorID string, id uint) error
}

type permissionService struct {
	permissionRepo repository.PermissionRepository
	assignmentRepo repository.AssignmentRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	hub            *ws.Hub
}

// NewPermissionService returns a new instance of PermissionService
func NewPermissionService(
	permissionRepo repository.PermissionRepository,
	assignmentRepo repository.AssignmentRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) PermissionService {
	return &permissionService{
		permissionRepo: permissionRepo,
		assignmentRepo: assignmentRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		hub:            hub,
	}
}

// --- Implementation ---

func toPermissionResponse(p model.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
	}
}

func (s *permissionService) Create(ctx context.Context, actorID string, req CreatePermissionRequest) (*PermissionResponse, error) {
	if req.Name == "" || req.Description == "" {
		return nil, fmt.Errorf("permission name and description are required: %w", apperr.ErrValidation)
	}

	permission := model.Permission{
		Name:        req.Name,
		Description: req.Description,
		Status:      model.StatusActive,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.permissionRepo.Create(txCtx, &permission); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionCreatePermission, strconv.FormatUint(uint64(permission.ID), 10), permission.Name, req))
	})
	if err != nil {
		return nil, err
	}

	broadcastAudit(s.hub, model.ActionCreatePermission, strconv.FormatUint(uint64(permission.ID), 10), permission.Name)

	res := toPermissionResponse(permission)
	return &res, nil
}

func (s *permissionService) List(ctx context.Context) ([]PermissionResponse, error) {
	permissions, err := s.permissionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		res = append(res, toPermissionResponse(p))
	}
	return res, nil
}

func (s *permissionService) Update(ctx context.Context, actorID string, id uint, req UpdatePermissionRequest) (*PermissionResponse, error) {
	permission, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The toggle flag flips ACTIVE<->DISABLED; the status itself is never set
	// to an arbitrary value.
	if req.ToggleStatus {
		permission.Status = model.ToggledStatus(permission.Status)
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("permission name must not be empty: %w", apperr.ErrValidation)
		}
		permission.Name = *req.Name
	}
	if req.Description != nil {
		permission.Description = *req.Description
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.permissionRepo.Update(txCtx, permission); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionUpdatePermission, strconv.FormatUint(uint64(permission.ID), 10), permission.Name, req))
	})
	if err != nil {
		return nil, err
	}

	broadcastAudit(s.hub, model.ActionUpdatePermission, strconv.FormatUint(uint64(permission.ID), 10), permission.Name)

	res := toPermissionResponse(*permission)
	return &res, nil
}

func (s *permissionService) Delete(ctx context.Context, actorID string, id uint) error {
	permission, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Assignment rows referencing the permission are cascade-removed in the
	// same transaction.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assignmentRepo.DeleteByPermission(txCtx, id); err != nil {
			return err
		}
		if err := s.permissionRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.auditRepo.Log(txCtx, auditEntry(actorID, model.ActionDeletePermission, strconv.FormatUint(uint64(id), 10), permission.Name, nil))
	})
	if err != nil {
		return err
	}

	broadcastAudit(s.hub, model.ActionDeletePermission, strconv.FormatUint(uint64(id), 10), permission.Name)
	return nil
}
