package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/config"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
)

// NewDB opens the sql database selected by cfg.StoreDriver and migrates the
// record tables.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.StoreDriver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DBUrl)
	default:
		return nil, fmt.Errorf("driver %q is not a sql driver", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.StoreDriver == config.DriverSQLite {
		// single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := db.AutoMigrate(store.Models()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// OpenStore builds the Record Store for cfg.StoreDriver, wrapped with
// failure metrics and logging.
func OpenStore(cfg *config.Config, log *zap.Logger) (store.Store, error) {
	var s store.Store

	switch cfg.StoreDriver {
	case config.DriverMemory:
		s = store.NewMemoryStore()
	case config.DriverJSON:
		fs, err := store.NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		s = fs
	case config.DriverSQLite, config.DriverPostgres:
		gdb, err := NewDB(cfg)
		if err != nil {
			return nil, err
		}
		s = store.NewGormStore(gdb)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	log.Info("store opened", zap.String("driver", cfg.StoreDriver))
	return store.NewInstrumented(s, log), nil
}
