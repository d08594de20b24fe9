package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// AssignmentRepository manages the role_permissions join rows
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.RolePermission) error
	ListPermissionsForRole(ctx context.Context, roleID uint) ([]model.Permission, error)
	DeleteByRole(ctx context.Context, roleID uint) error
	DeleteByPermission(ctx context.Context, permissionID uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository returns a new instance of AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.RolePermission) error {
	if err := GetDB(ctx, r.db).Create(assignment).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *assignmentRepository) ListPermissionsForRole(ctx context.Context, roleID uint) ([]model.Permission, error) {
	var permissions []model.Permission
	err := GetDB(ctx, r.db).
		Joins("INNER JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.id asc").
		Find(&permissions).Error
	if err != nil {
		return nil, translate(err)
	}
	return permissions, nil
}

func (r *assignmentRepository) DeleteByRole(ctx context.Context, roleID uint) error {
	if err := GetDB(ctx, r.db).Where("role_id = ?", roleID).Delete(&model.RolePermission{}).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *assignmentRepository) DeleteByPermission(ctx context.Context, permissionID uint) error {
	if err := GetDB(ctx, r.db).Where("permission_id = ?", permissionID).Delete(&model.RolePermission{}).Error; err != nil {
		return translate(err)
	}
	return nil
}
