package model

import "time"

// Entity status values. Status is a binary toggle, never an arbitrary set.
const (
	StatusActive   = "Active"
	StatusDisabled = "Disabled"
)

// ToggledStatus returns the opposite status value
func ToggledStatus(status string) string {
	if status == StatusActive {
		return StatusDisabled
	}
	return StatusActive
}

// Permission represents a single named capability that can be assigned to roles
type Permission struct {
	ID          uint      `gorm:"primaryKey" json:"permission_id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"permission_name"`
	Description string    `gorm:"type:varchar(100);not null" json:"description"`
	Status      string    `gorm:"type:varchar(10);not null;default:'Active'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}
