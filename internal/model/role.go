package model

import "time"

// Role groups permissions; every account references exactly one role
type Role struct {
	ID          uint         `gorm:"primaryKey" json:"role_id"`
	Name        string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Status      string       `gorm:"type:varchar(10);not null;default:'Active'" json:"status"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"-"`
}

// RolePermission is the explicit join row linking a role to a permission.
// The composite unique index keeps the relation set-like: assigning the same
// pair twice is a constraint violation, not a silent duplicate.
type RolePermission struct {
	ID           uint      `gorm:"primaryKey" json:"role_permission_id"`
	RoleID       uint      `gorm:"not null;uniqueIndex:idx_role_permission" json:"role_id"`
	PermissionID uint      `gorm:"not null;uniqueIndex:idx_role_permission" json:"permission_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
