package repository

import (
	"context"

	"paygate/internal/models"
	"paygate/pkg/paypal/ipn"

	"gorm.io/gorm"
)

// IPNRepository stores IPN deliveries. It satisfies ipn.Store.
type IPNRepository struct {
	db *gorm.DB
}

func NewIPNRepository(db *gorm.DB) *IPNRepository {
	return &IPNRepository{db: db}
}

func (r *IPNRepository) Save(ctx context.Context, rec *ipn.Record) (uint, error) {
	m := ipnModel(rec)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

// HasCompletedTxn ignores flagged rows so a rejected delivery never blocks
// the genuine one.
func (r *IPNRepository) HasCompletedTxn(ctx context.Context, txnID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.IPNNotification{}).
		Where("txn_id = ? AND payment_status = ? AND flag = ?", txnID, ipn.StatusCompleted, false).
		Count(&n).Error
	return n > 0, err
}

func (r *IPNRepository) GetByID(ctx context.Context, id uint) (*models.IPNNotification, error) {
	var m models.IPNNotification
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

type IPNFilter struct {
	TxnID   string
	TxnType string
	Flagged *bool
}

func (r *IPNRepository) List(ctx context.Context, f IPNFilter, page, limit int) ([]models.IPNNotification, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.IPNNotification{})
	if f.TxnID != "" {
		q = q.Where("txn_id = ?", f.TxnID)
	}
	if f.TxnType != "" {
		q = q.Where("txn_type = ?", f.TxnType)
	}
	if f.Flagged != nil {
		q = q.Where("flag = ?", *f.Flagged)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.IPNNotification
	err := q.Order("created_at DESC, id DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func ipnModel(rec *ipn.Record) *models.IPNNotification {
	m := &models.IPNNotification{
		TxnID:              rec.TxnID(),
		TxnType:            rec.TxnType,
		PaymentStatus:      rec.PaymentStatus(),
		ReceiverEmail:      rec.ReceiverEmail(),
		PayerEmail:         rec.Get("payer_email"),
		RecurringPaymentID: rec.Get("recurring_payment_id"),
		SubscrID:           rec.Get("subscr_id"),
		McGross:            rec.Get("mc_gross"),
		McCurrency:         rec.Get("mc_currency"),
		Fields:             rec.Fields,
		Dates:              rec.Dates,
		TestIPN:            rec.TestIPN,
		Flag:               rec.Flag,
		FlagCode:           rec.FlagCode,
		FlagInfo:           rec.FlagInfo,
		IPAddress:          rec.IPAddress,
		UserID:             rec.UserID,
		Query:              rec.Query,
		Response:           rec.Response,
		CreatedAt:          rec.CreatedAt,
	}
	if t, ok := rec.Date("payment_date"); ok {
		m.PaymentDate = &t
	}
	return m
}
