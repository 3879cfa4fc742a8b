package database

import (
	"errors"
	"fmt"

	"paygate/config"
	"paygate/internal/domain"
	"paygate/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Operator{},
		&models.NVPTransaction{},
		&models.IPNNotification{},
		&models.PaymentEvent{},
		&models.AuditLog{},
	)
}

// SeedOperator creates the configured admin operator if it does not exist
// yet. Nothing happens when no operator is configured.
func SeedOperator(db *gorm.DB, cfg *config.OperatorConfig, log zerolog.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		log.Info().Msg("[DB] no OPERATOR_EMAIL/OPERATOR_PASSWORD set, skipping operator seed")
		return nil
	}
	var existing models.Operator
	err := db.Where("email = ?", cfg.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed operator: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed operator: %w", err)
	}
	op := &models.Operator{Email: cfg.Email, PasswordHash: string(hash), Role: domain.RoleAdmin}
	if err := db.Create(op).Error; err != nil {
		return fmt.Errorf("seed operator: %w", err)
	}
	log.Info().Str("email", op.Email).Uint("operator_id", op.ID).Msg("[DB] seeded admin operator")
	return nil
}
