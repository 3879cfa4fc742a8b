package models

import "time"

// IPNNotification is one stored IPN delivery.
type IPNNotification struct {
	ID                 uint                 `gorm:"primaryKey" json:"id"`
	TxnID              string               `gorm:"size:64;index" json:"txn_id"`
	TxnType            string               `gorm:"size:128;index" json:"txn_type"`
	PaymentStatus      string               `gorm:"size:32;index" json:"payment_status"`
	ReceiverEmail      string               `gorm:"size:255" json:"receiver_email"`
	PayerEmail         string               `gorm:"size:255" json:"payer_email"`
	RecurringPaymentID string               `gorm:"size:64;index" json:"recurring_payment_id"`
	SubscrID           string               `gorm:"size:64;index" json:"subscr_id"`
	McGross            string               `gorm:"size:32" json:"mc_gross"`
	McCurrency         string               `gorm:"size:8" json:"mc_currency"`
	PaymentDate        *time.Time           `json:"payment_date"`
	Fields             map[string]string    `gorm:"type:text;serializer:json" json:"fields"`
	Dates              map[string]time.Time `gorm:"type:text;serializer:json" json:"dates"`
	TestIPN            bool                 `gorm:"not null;default:false" json:"test_ipn"`
	Flag               bool                 `gorm:"not null;default:false;index" json:"flag"`
	FlagCode           string               `gorm:"size:32" json:"flag_code"`
	FlagInfo           string               `gorm:"type:text" json:"flag_info"`
	IPAddress          string               `gorm:"size:45" json:"ip_address"`
	UserID             *uint                `gorm:"index" json:"user_id"`
	Query              string               `gorm:"type:text" json:"query"`
	Response           string               `gorm:"type:text" json:"response"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func (IPNNotification) TableName() string { return "paypal_ipn" }
