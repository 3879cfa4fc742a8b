package repository

import (
	"context"

	"paygate/internal/models"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, a *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AuditLogRepository) ListByOperator(ctx context.Context, operatorID uint, limit int) ([]models.AuditLog, error) {
	var list []models.AuditLog
	err := r.db.WithContext(ctx).Where("operator_id = ?", operatorID).
		Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}
