package repository

import (
	"context"

	"paygate/internal/models"
	"paygate/pkg/paypal/nvp"

	"gorm.io/gorm"
)

// NVPRepository stores NVP call records. It satisfies nvp.Store.
type NVPRepository struct {
	db *gorm.DB
}

func NewNVPRepository(db *gorm.DB) *NVPRepository {
	return &NVPRepository{db: db}
}

func (r *NVPRepository) Save(ctx context.Context, rec *nvp.Record) (uint, error) {
	m := nvpModel(rec)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (r *NVPRepository) GetByID(ctx context.Context, id uint) (*models.NVPTransaction, error) {
	var m models.NVPTransaction
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

type NVPFilter struct {
	Method    string
	ProfileID string
	Flagged   *bool
}

// List returns records newest first.
func (r *NVPRepository) List(ctx context.Context, f NVPFilter, page, limit int) ([]models.NVPTransaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.NVPTransaction{})
	if f.Method != "" {
		q = q.Where("method = ?", f.Method)
	}
	if f.ProfileID != "" {
		q = q.Where("profile_id = ?", f.ProfileID)
	}
	if f.Flagged != nil {
		q = q.Where("flag = ?", *f.Flagged)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.NVPTransaction
	err := q.Order("created_at DESC, id DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func nvpModel(rec *nvp.Record) *models.NVPTransaction {
	return &models.NVPTransaction{
		Method:        rec.Method,
		Ack:           rec.Ack(),
		TransactionID: rec.Get(nvp.FieldTransactionID),
		ProfileID:     rec.Get(nvp.FieldProfileID),
		Token:         rec.Get(nvp.FieldToken),
		CorrelationID: rec.Get(nvp.FieldCorrelationID),
		Amt:           rec.Get(nvp.FieldAmt),
		Fields:        rec.Fields,
		Timestamp:     rec.Timestamp,
		Flag:          rec.Flag,
		FlagCode:      rec.FlagCode,
		FlagInfo:      rec.FlagInfo,
		IPAddress:     rec.IPAddress,
		UserID:        rec.UserID,
		Query:         rec.Query,
		Response:      rec.Response,
		CreatedAt:     rec.CreatedAt,
	}
}
