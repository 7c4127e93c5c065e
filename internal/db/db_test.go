package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fims/internal/model"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	gormDB, err := Open(Config{Driver: DriverSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, Migrate(gormDB, false))

	for _, m := range Models {
		assert.True(t, gormDB.Migrator().HasTable(m))
	}

	require.NoError(t, gormDB.Create(&model.Item{ItemID: 1, Name: "Wool", Category: "Raw"}).Error)
	require.NoError(t, Migrate(gormDB, true))

	var count int64
	require.NoError(t, gormDB.Model(&model.Item{}).Count(&count).Error)
	assert.Zero(t, count, "reset drops existing rows")
}

func TestOpenSQLiteExplicitDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.db")
	gormDB, err := Open(Config{Driver: DriverSQLite, DSN: path})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	assert.Error(t, err)
}
