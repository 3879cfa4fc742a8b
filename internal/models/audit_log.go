package models

import "time"

// AuditLog records what an operator did from the console.
type AuditLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	OperatorID *uint             `gorm:"index" json:"operator_id"`
	Action     string            `gorm:"size:100;not null;index" json:"action"`
	Resource   string            `gorm:"size:100;index" json:"resource"`
	ResourceID string            `gorm:"size:100;index" json:"resource_id"`
	IP         string            `gorm:"size:45" json:"ip"`
	UserAgent  string            `gorm:"size:512" json:"user_agent"`
	Metadata   map[string]string `gorm:"type:text;serializer:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
