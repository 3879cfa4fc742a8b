package models

import "time"

// PaymentEvent is the history of everything handed to the event sink.
type PaymentEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	EventID   string            `gorm:"size:36;uniqueIndex;not null" json:"event_id"`
	Name      string            `gorm:"size:64;not null;index" json:"name"`
	Source    string            `gorm:"size:8;not null;index" json:"source"` // nvp | ipn
	RecordID  uint              `gorm:"index" json:"record_id"`
	Params    map[string]string `gorm:"type:text;serializer:json" json:"params"`
	CreatedAt time.Time         `json:"created_at"`
}

func (PaymentEvent) TableName() string { return "payment_events" }
