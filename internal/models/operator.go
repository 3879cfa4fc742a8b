package models

import (
	"time"

	"paygate/internal/domain"

	"gorm.io/gorm"
)

// Operator is a console user allowed to drive NVP calls and read the logs.
type Operator struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // ADMIN | OPERATOR | VIEWER
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Operator) TableName() string { return "operators" }

// CanCallPayPal reports whether the operator may issue NVP calls.
func (o *Operator) CanCallPayPal() bool {
	return o.Role == domain.RoleAdmin || o.Role == domain.RoleOperator
}
