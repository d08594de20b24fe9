package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// AccountRepository defines the interface for data access of Account entities
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, page, limit int) ([]model.Account, int64, error)
	Update(ctx context.Context, account *model.Account) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	CountByRole(ctx context.Context, roleID uint) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a new instance of AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	if err := GetDB(ctx, r.db).Create(account).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	if err := GetDB(ctx, r.db).Preload("Role").First(&account, "account_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := GetDB(ctx, r.db).Preload("Role").First(&account, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *accountRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Account{}).Where("account_id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *accountRepository) List(ctx context.Context, page, limit int) ([]model.Account, int64, error) {
	var accounts []model.Account
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Account{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	offset := (page - 1) * limit
	if err := db.Preload("Role").Order("created_at asc").Offset(offset).Limit(limit).Find(&accounts).Error; err != nil {
		return nil, 0, translate(err)
	}

	return accounts, total, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	if err := GetDB(ctx, r.db).Save(account).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	res := GetDB(ctx, r.db).Model(&model.Account{}).Where("account_id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return translate(res.Error)
	}
	return nil
}

func (r *accountRepository) CountByRole(ctx context.Context, roleID uint) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Account{}).Where("role_id = ?", roleID).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
