package model

import "time"

// Gender values accepted for an account
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// GenderLabel maps a gender value to its human-readable form
func GenderLabel(gender string) string {
	switch gender {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	}
	return gender
}

// ValidGender reports whether the given value is an accepted gender
func ValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale || gender == GenderOther
}

// Account represents a user account. The primary key is a randomly generated
// five-digit numeric string; Password always holds a bcrypt hash and is never
// serialized.
type Account struct {
	AccountID   string    `gorm:"type:char(5);primaryKey" json:"account_id"`
	UserName    string    `gorm:"type:varchar(100);not null" json:"user_name"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	RoleID      uint      `gorm:"not null;index" json:"role_id"`
	Role        Role      `gorm:"foreignKey:RoleID" json:"-"`
	BirthDay    time.Time `gorm:"type:date;not null" json:"birth_day"`
	Address     string    `gorm:"type:varchar(255);not null" json:"address"`
	Email       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PhoneNumber string    `gorm:"type:varchar(10);not null" json:"phone_number"`
	Gender      string    `gorm:"type:varchar(6);not null;default:'MALE'" json:"gender"`
	Status      string    `gorm:"type:varchar(10);not null;default:'Active'" json:"status"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}
