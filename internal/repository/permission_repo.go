package repository

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/pkg/apperr"

	"gorm.io/gorm"
)

// PermissionRepository defines the interface for data access of Permission entities
type PermissionRepository interface {
	Create(ctx context.Context, permission *model.Permission) error
	GetByID(ctx context.Context, id uint) (*model.Permission, error)
	List(ctx context.Context) ([]model.Permission, error)
	Update(ctx context.Context, permission *model.Permission) error
	Delete(ctx context.Context, id uint) error
}

type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository returns a new instance of PermissionRepository
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	if err := GetDB(ctx, r.db).Create(permission).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *permissionRepository) GetByID(ctx context.Context, id uint) (*model.Permission, error) {
	var permission model.Permission
	if err := GetDB(ctx, r.db).First(&permission, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &permission, nil
}

func (r *permissionRepository) List(ctx context.Context) ([]model.Permission, error) {
	var permissions []model.Permission
	// Creation order
	if err := GetDB(ctx, r.db).Order("id asc").Find(&permissions).Error; err != nil {
		return nil, translate(err)
	}
	return permissions, nil
}

func (r *permissionRepository) Update(ctx context.Context, permission *model.Permission) error {
	if err := GetDB(ctx, r.db).Save(permission).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *permissionRepository) Delete(ctx context.Context, id uint) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Permission{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// translate maps gorm errors to the application error taxonomy so storage
// details never leak past the repository layer.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ErrConflict
	default:
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
}
