// Package gormstore 将内容记录持久化到关系型数据库 (sqlite/postgres)。
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"gorm.io/gorm"
)

// Store 是基于 gorm 的通用 content.Store 实现，R 为记录类型，Row 为表结构。
type Store[R content.Record, Row any] struct {
	db      *gorm.DB
	kind    content.Kind
	toRow   func(R) Row
	fromRow func(*Row) R
}

var _ content.Store[*content.Picture] = (*Store[*content.Picture, PictureRow])(nil)

func newStore[R content.Record, Row any](db *gorm.DB, kind content.Kind, toRow func(R) Row, fromRow func(*Row) R) *Store[R, Row] {
	return &Store[R, Row]{db: db, kind: kind, toRow: toRow, fromRow: fromRow}
}

func (s *Store[R, Row]) Create(ctx context.Context, rec R) (R, error) {
	var zero R
	key, err := content.NewKey()
	if err != nil {
		return zero, err
	}
	// 主键只写入行，调用方的记录保持原样
	meta := rec.Base()
	prev := *meta
	meta.Key = key
	row := s.toRow(rec)
	*meta = prev

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return zero, content.WrapStorage(s.kind, "create", err)
	}
	return s.fromRow(&row), nil
}

func (s *Store[R, Row]) List(ctx context.Context) ([]R, error) {
	var rows []Row
	if err := s.db.WithContext(ctx).Order(content.ColumnKey + " asc").Find(&rows).Error; err != nil {
		return nil, content.WrapStorage(s.kind, "list", err)
	}
	records := make([]R, len(rows))
	for i := range rows {
		records[i] = s.fromRow(&rows[i])
	}
	return records, nil
}

func (s *Store[R, Row]) Find(ctx context.Context, f content.Filter) (R, error) {
	var zero R
	if len(f) == 0 {
		return zero, content.ErrEmptyFilter
	}
	var row Row
	err := s.db.WithContext(ctx).
		Where(map[string]any(f)).
		Order(content.ColumnKey + " asc").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, content.NotFound(s.kind, f)
		}
		return zero, content.WrapStorage(s.kind, "find", err)
	}
	return s.fromRow(&row), nil
}

func (s *Store[R, Row]) Update(ctx context.Context, f content.Filter, changes content.Filter) (int64, error) {
	if len(f) == 0 {
		return 0, content.ErrEmptyFilter
	}
	if len(changes) == 0 {
		return 0, content.NewValidationError("没有需要更新的字段")
	}
	// Updates 使用 map 时，gorm 会一并刷新 updated_at
	res := s.db.WithContext(ctx).
		Model(new(Row)).
		Where(map[string]any(f)).
		Updates(map[string]any(changes))
	if res.Error != nil {
		return 0, content.WrapStorage(s.kind, "update", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, content.NotFound(s.kind, f)
	}
	return res.RowsAffected, nil
}

func (s *Store[R, Row]) Delete(ctx context.Context, f content.Filter) (int64, error) {
	if len(f) == 0 {
		return 0, content.ErrEmptyFilter
	}
	// 行结构没有 DeletedAt 字段，这里是物理删除
	res := s.db.WithContext(ctx).Where(map[string]any(f)).Delete(new(Row))
	if res.Error != nil {
		return 0, content.WrapStorage(s.kind, "delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, content.NotFound(s.kind, f)
	}
	return res.RowsAffected, nil
}

// Migrate 负责自动迁移三张内容表的结构
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&PictureRow{}, &TextRow{}, &LocationRow{}); err != nil {
		return fmt.Errorf("无法迁移内容表: %w", err)
	}
	return nil
}

// NewRepository 在已迁移的数据库上构造内容仓库。
func NewRepository(db *gorm.DB, driver string) *content.Repository {
	return &content.Repository{
		Pictures:  newStore(db, content.KindPicture, pictureToRow, pictureFromRow),
		Texts:     newStore(db, content.KindText, textToRow, textFromRow),
		Locations: newStore(db, content.KindLocation, locationToRow, locationFromRow),
		Backend:   &backend{db: db, name: driver},
	}
}

type backend struct {
	db   *gorm.DB
	name string
}

func (b *backend) Name() string { return b.name }

func (b *backend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (b *backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
