package repository

import (
	"context"

	"paygate/internal/models"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *models.PaymentEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// List filters by event name and source when they are non-empty.
func (r *EventRepository) List(ctx context.Context, name, source string, page, limit int) ([]models.PaymentEvent, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.PaymentEvent{})
	if name != "" {
		q = q.Where("name = ?", name)
	}
	if source != "" {
		q = q.Where("source = ?", source)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.PaymentEvent
	err := q.Order("created_at DESC, id DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
