package startup

import (
	"fmt"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/SlpAus/impact-report-backend/internal/content/gormstore"
	"github.com/SlpAus/impact-report-backend/internal/content/redisstore"
	"github.com/SlpAus/impact-report-backend/internal/platform/config"
	"github.com/SlpAus/impact-report-backend/internal/platform/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenRepository 是内容存储的初始化总入口：连接配置的存储引擎，
// 必要时迁移表结构，并返回进程内唯一的内容仓库。
func OpenRepository(cfg config.DatabaseConfig, log *zap.Logger) (*content.Repository, error) {
	switch cfg.Driver {
	case config.DriverSqlite, config.DriverPostgres:
		db, err := database.OpenSQL(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := migrateOrClose(db, gormstore.Migrate); err != nil {
			return nil, err
		}
		log.Info("内容表迁移成功")
		return gormstore.NewRepository(db, cfg.Driver), nil

	case config.DriverRedis:
		rdb, err := database.OpenRedis(cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return redisstore.NewRepository(rdb, cfg.Redis.Prefix), nil

	default:
		return nil, fmt.Errorf("不支持的存储引擎: %q", cfg.Driver)
	}
}

// migrateOrClose 迁移表结构，失败时关闭刚打开的连接
func migrateOrClose(db *gorm.DB, migrate func(*gorm.DB) error) error {
	if err := migrate(db); err != nil {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
		return err
	}
	return nil
}
