package gormstore

import (
	"time"

	"github.com/SlpAus/impact-report-backend/internal/content"
)

// 下面的行结构只在本包内使用，content 包中的记录类型不依赖 gorm。
// 列名必须与 content.Column* 常量保持一致。

// PictureRow 对应 pictures 表
type PictureRow struct {
	Key       string `gorm:"column:id;primaryKey;type:varchar(36)"`
	Component string `gorm:"not null;index:idx_pictures_slot"`
	RecordID  int    `gorm:"not null;index:idx_pictures_slot"`
	ImageURL  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PictureRow) TableName() string { return "pictures" }

// TextRow 对应 texts 表
type TextRow struct {
	Key             string `gorm:"column:id;primaryKey;type:varchar(36)"`
	Component       string `gorm:"not null;index:idx_texts_slot"`
	RecordID        int    `gorm:"not null;index:idx_texts_slot"`
	TextDescription string `gorm:"type:text;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (TextRow) TableName() string { return "texts" }

// LocationRow 对应 locations 表
type LocationRow struct {
	Key       string  `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name      string  `gorm:"not null;index"`
	Lat       float64 `gorm:"not null"`
	Lng       float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LocationRow) TableName() string { return "locations" }

// --- 记录与行之间的映射 ---

func pictureToRow(p *content.Picture) PictureRow {
	return PictureRow{
		Key:       p.Key,
		Component: p.Component,
		RecordID:  p.ID,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func pictureFromRow(r *PictureRow) *content.Picture {
	return &content.Picture{
		Meta:      content.Meta{Key: r.Key, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Component: r.Component,
		ID:        r.RecordID,
		ImageURL:  r.ImageURL,
	}
}

func textToRow(t *content.Text) TextRow {
	return TextRow{
		Key:             t.Key,
		Component:       t.Component,
		RecordID:        t.ID,
		TextDescription: t.TextDescription,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func textFromRow(r *TextRow) *content.Text {
	return &content.Text{
		Meta:            content.Meta{Key: r.Key, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Component:       r.Component,
		ID:              r.RecordID,
		TextDescription: r.TextDescription,
	}
}

func locationToRow(l *content.Location) LocationRow {
	return LocationRow{
		Key:       l.Key,
		Name:      l.Name,
		Lat:       l.Lat,
		Lng:       l.Lng,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func locationFromRow(r *LocationRow) *content.Location {
	return &content.Location{
		Meta: content.Meta{Key: r.Key, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Name: r.Name,
		Lat:  r.Lat,
		Lng:  r.Lng,
	}
}
