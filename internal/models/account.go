package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountRole is the binary role model: members and admins.
type AccountRole string

const (
	// AccountRoleUser is the default member role.
	AccountRoleUser AccountRole = "user"
	// AccountRoleAdmin grants access to admin-only routes.
	AccountRoleAdmin AccountRole = "admin"
)

// Account is the login identity backing a profile. Core operations never see
// accounts; they trust the email resolved from the account's token.
type Account struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      AccountRole    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// IsAdmin reports whether the account has the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == AccountRoleAdmin
}
