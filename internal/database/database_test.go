package database

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"paygate/config"
	"paygate/internal/domain"
	"paygate/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestSeedOperator(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.OperatorConfig{Email: "ops@example.com", Password: "s3cret-pass"}

	require.NoError(t, SeedOperator(db, cfg, zerolog.Nop()))
	require.NoError(t, SeedOperator(db, cfg, zerolog.Nop()), "second run is a no-op")

	var ops []models.Operator
	require.NoError(t, db.Find(&ops).Error)
	require.Len(t, ops, 1)
	assert.Equal(t, domain.RoleAdmin, ops[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(ops[0].PasswordHash), []byte("s3cret-pass")))
}

func TestSeedOperatorSkippedWhenUnset(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedOperator(db, &config.OperatorConfig{}, zerolog.Nop()))

	var n int64
	db.Model(&models.Operator{}).Count(&n)
	assert.Zero(t, n)
}
