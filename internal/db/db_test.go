package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"room-reservation-backend/config"
	"room-reservation-backend/internal/model"
)

func TestInitSQLiteMigrates(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "sqlite", DSN: "file:db_init_test?mode=memory&cache=shared", MaxOpenConns: 1}
	gormDB, err := Init(cfg, zap.NewNop())
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	defer sqlDB.Close()

	assert.True(t, gormDB.Migrator().HasTable(&model.Reservation{}))
	assert.True(t, gormDB.Migrator().HasTable(&model.Room{}))
	assert.True(t, gormDB.Migrator().HasTable(&model.PushSubscription{}))
	assert.True(t, gormDB.Migrator().HasColumn(&model.Reservation{}, "reserved_by"))
}

func TestInitUnknownDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "mysql", DSN: "x"}, zap.NewNop())
	assert.Error(t, err)
}
