package db

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fims/internal/model"
)

// DriverType represents the type of database driver
type DriverType string

const (
	DriverMySQL    DriverType = "mysql"
	DriverPostgres DriverType = "postgres"
	DriverSQLite   DriverType = "sqlite"
)

// SupportedDrivers lists every DriverType Open accepts.
var SupportedDrivers = []DriverType{DriverMySQL, DriverPostgres, DriverSQLite}

// Config holds the connection settings.
type Config struct {
	Driver DriverType
	// DSN is the connection string. For SQLite it is the database file path and
	// defaults to fims.db inside DataDir.
	DSN     string
	DataDir string
	Debug   bool
}

// Models lists every table the service owns, in migration order.
var Models = []any{
	&model.User{},
	&model.Item{},
	&model.Report{},
}

// Open returns a connected GORM DB instance for the configured driver.
// The returned handle is a connection pool; statements borrow and release
// connections per call.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverMySQL, "":
		dialector = mysql.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = filepath.Join(cfg.DataDir, "fims.db")
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported database driver '%s'", cfg.Driver)
	}

	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logMode)})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == DriverSQLite {
		// SQLite allows one writer per file; a single connection queues writes
		// instead of failing them with SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "sqlite pool")
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates the schema. With reset set, existing tables are
// dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		for i := len(Models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(Models[i]); err != nil {
				return errors.Wrap(err, "drop table")
			}
		}
	}
	return errors.Wrap(db.AutoMigrate(Models...), "auto-migrate")
}
