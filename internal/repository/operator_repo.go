package repository

import (
	"context"

	"paygate/internal/models"

	"gorm.io/gorm"
)

type OperatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

func (r *OperatorRepository) Create(ctx context.Context, o *models.Operator) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OperatorRepository) GetByID(ctx context.Context, id uint) (*models.Operator, error) {
	var o models.Operator
	err := r.db.WithContext(ctx).First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OperatorRepository) GetByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var o models.Operator
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OperatorRepository) Update(ctx context.Context, o *models.Operator) error {
	return r.db.WithContext(ctx).Save(o).Error
}
