package model

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an authenticated account to subsequent requests until logout
// or expiry. The opaque token is what clients present; it is never logged.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	AccountID string    `gorm:"type:char(5);not null;index" json:"account_id"`
	Account   Account   `gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
