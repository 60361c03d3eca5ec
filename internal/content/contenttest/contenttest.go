// Package contenttest 为测试提供基于内存 SQLite 的内容仓库。
package contenttest

import (
	"testing"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/SlpAus/impact-report-backend/internal/content/gormstore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB 打开一个已迁移的内存数据库，测试结束时自动关闭。
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// 每个连接都有独立的内存库，只保留一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := gormstore.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Repository 返回基于内存 SQLite 的内容仓库。
func Repository(t testing.TB) *content.Repository {
	t.Helper()
	return gormstore.NewRepository(OpenDB(t), "sqlite")
}
