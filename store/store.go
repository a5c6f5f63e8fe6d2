package store

import (
	"fmt"
	"sync"

	"dsc/core"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	migrateMu sync.Mutex
	migrates  []func(db *gorm.DB) error
)

// RegisterMigrate register a schema migration, run by Migrate
func RegisterMigrate(fn func(db *gorm.DB) error) {
	migrateMu.Lock()
	defer migrateMu.Unlock()
	migrates = append(migrates, fn)
}

// Migrate run every registered migration
func Migrate(db *gorm.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	for _, fn := range migrates {
		if err := fn(db); err != nil {
			return err
		}
	}

	return nil
}

// Open open the configured database
func Open(cfg core.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported db dialect %q", cfg.Dialect)
	}

	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
