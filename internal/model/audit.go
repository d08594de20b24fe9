package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateRole       = "CREATE_ROLE"
	ActionUpdateRole       = "UPDATE_ROLE"
	ActionDeleteRole       = "DELETE_ROLE"
	ActionCreatePermission = "CREATE_PERMISSION"
	ActionUpdatePermission = "UPDATE_PERMISSION"
	ActionDeletePermission = "DELETE_PERMISSION"
	ActionAssignPermission = "ASSIGN_PERMISSION"
	ActionCreateAccount    = "CREATE_ACCOUNT"
	ActionUpdateAccount    = "UPDATE_ACCOUNT"
	ActionChangePassword   = "CHANGE_PASSWORD"
	ActionLogin            = "LOGIN"
	ActionLogout           = "LOGOUT"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID  *string   `gorm:"type:char(5);index" json:"account_id"` // Nullable for unauthenticated actions
	Account    *Account  `gorm:"foreignKey:AccountID" json:"account"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
