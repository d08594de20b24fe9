package repository

import (
	"context"

	"backend/internal/model"
	"backend/pkg/apperr"

	"gorm.io/gorm"
)

// RoleRepository defines the interface for data access of Role entities
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	GetByID(ctx context.Context, id uint) (*model.Role, error)
	GetByIDWithPermissions(ctx context.Context, id uint) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uint) error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository returns a new instance of RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	if err := GetDB(ctx, r.db).Create(role).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).First(&role, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepository) GetByIDWithPermissions(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).Preload("Permissions").First(&role, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	// Creation order
	if err := GetDB(ctx, r.db).Order("id asc").Find(&roles).Error; err != nil {
		return nil, translate(err)
	}
	return roles, nil
}

func (r *roleRepository) Update(ctx context.Context, role *model.Role) error {
	if err := GetDB(ctx, r.db).Save(role).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id uint) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Role{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
