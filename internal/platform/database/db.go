package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SlpAus/impact-report-backend/internal/platform/config"
	"github.com/SlpAus/impact-report-backend/internal/platform/logging"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenSQL 按配置连接 SQLite 或 Postgres
func OpenSQL(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSqlite:
		if dir := filepath.Dir(cfg.Sqlite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("无法创建数据库目录: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Sqlite.Path)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Postgres.DSN)
	default:
		return nil, fmt.Errorf("%q 不是关系型存储引擎", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	if cfg.Driver == config.DriverSqlite {
		// SQLite 同一时刻只允许一个写者，单连接可避免 database is locked
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("数据库连接成功", zap.String("driver", cfg.Driver))
	return db, nil
}
