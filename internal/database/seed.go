package database

import (
	"errors"
	"fmt"
	"os"
	"time"

	"backend/internal/model"
	"backend/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureAdmin creates the admin role and a first administrator account when
// the database is empty. Every mutating endpoint requires a session, so
// without a seeded account nobody could ever log in. The credentials come
// from ADMIN_EMAIL and ADMIN_PASSWORD; when either is unset the seed is
// skipped.
func EnsureAdmin(db *gorm.DB, hasher password.Hasher, logger *zap.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		logger.Info("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var role model.Role
		err := tx.Where("name = ?", "admin").First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = model.Role{Name: "admin", Status: model.StatusActive}
			if err := tx.Create(&role).Error; err != nil {
				return fmt.Errorf("seed admin role: %w", err)
			}
		} else if err != nil {
			return err
		}

		var existing model.Account
		err = tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := hasher.Hash(pass)
		if err != nil {
			return fmt.Errorf("seed admin password: %w", err)
		}

		account := model.Account{
			AccountID:   "00001",
			UserName:    "Administrator",
			Password:    hash,
			RoleID:      role.ID,
			BirthDay:    time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			Address:     "N/A",
			Email:       email,
			PhoneNumber: "0000000000",
			Gender:      model.GenderOther,
			Status:      model.StatusActive,
			IsActive:    true,
			IsStaff:     true,
		}
		if err := tx.Create(&account).Error; err != nil {
			return fmt.Errorf("seed admin account: %w", err)
		}

		logger.Info("seeded administrator account", zap.String("email", email))
		return nil
	})
}
