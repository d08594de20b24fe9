package database

import (
	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM. TranslateError
// is on so unique-index violations surface as gorm.ErrDuplicatedKey and the
// repositories can map them without driver-specific checks.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// The join table carries its own primary key, so register it before
	// migrating the association.
	if err := db.SetupJoinTable(&model.Role{}, "Permissions", &model.RolePermission{}); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.Permission{},
		&model.Role{},
		&model.RolePermission{},
		&model.Account{},
		&model.Session{},
		&model.AuditLog{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
