package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// SessionRepository defines the interface for data access of Session entities
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByAccount(ctx context.Context, accountID string, keepToken string) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository returns a new instance of SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	if err := GetDB(ctx, r.db).Create(session).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	if err := GetDB(ctx, r.db).Preload("Account").Preload("Account.Role").First(&session, "token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

// DeleteByToken removes a session. Deleting an absent token is not an error;
// logout must stay idempotent.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := GetDB(ctx, r.db).Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
		return translate(err)
	}
	return nil
}

// DeleteByAccount revokes every session of an account except keepToken (pass
// an empty string to revoke all of them).
func (r *sessionRepository) DeleteByAccount(ctx context.Context, accountID string, keepToken string) error {
	db := GetDB(ctx, r.db).Where("account_id = ?", accountID)
	if keepToken != "" {
		db = db.Where("token <> ?", keepToken)
	}
	if err := db.Delete(&model.Session{}).Error; err != nil {
		return translate(err)
	}
	return nil
}
