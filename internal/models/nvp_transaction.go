package models

import "time"

// NVPTransaction is the stored form of one NVP call. The schema fields PayPal
// is most often queried by get their own columns; the rest stay in Fields.
type NVPTransaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Method        string            `gorm:"size:64;not null;index" json:"method"`
	Ack           string            `gorm:"size:32;index" json:"ack"`
	TransactionID string            `gorm:"size:64;index" json:"transaction_id"`
	ProfileID     string            `gorm:"size:64;index" json:"profile_id"`
	Token         string            `gorm:"size:64;index" json:"token"`
	CorrelationID string            `gorm:"size:64" json:"correlation_id"`
	Amt           string            `gorm:"size:32" json:"amt"`
	Fields        map[string]string `gorm:"type:text;serializer:json" json:"fields"`
	Timestamp     *time.Time        `json:"timestamp"`
	Flag          bool              `gorm:"not null;default:false;index" json:"flag"`
	FlagCode      string            `gorm:"size:32" json:"flag_code"`
	FlagInfo      string            `gorm:"type:text" json:"flag_info"`
	IPAddress     string            `gorm:"size:45" json:"ip_address"`
	UserID        *uint             `gorm:"index" json:"user_id"`
	Query         string            `gorm:"type:text" json:"query"`
	Response      string            `gorm:"type:text" json:"response"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (NVPTransaction) TableName() string { return "paypal_nvp" }
