// Package seed 把 YAML 内容文件导入内容仓库，用于发布站点的静态内容。
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File 对应内容文件的顶层结构
type File struct {
	Pictures  []PictureEntry  `yaml:"pictures"`
	Texts     []TextEntry     `yaml:"texts"`
	Locations []LocationEntry `yaml:"locations"`
}

type PictureEntry struct {
	Component string `yaml:"component"`
	ID        *int   `yaml:"id"`
	ImageURL  string `yaml:"imageUrl"`
}

type TextEntry struct {
	Component       string `yaml:"component"`
	ID              *int   `yaml:"id"`
	TextDescription string `yaml:"textDescription"`
}

type LocationEntry struct {
	Name string   `yaml:"name"`
	Lat  *float64 `yaml:"lat"`
	Lng  *float64 `yaml:"lng"`
}

// Summary 统计一次导入写入与替换的记录数
type Summary struct {
	Pictures  int
	Texts     int
	Locations int
	// Replaced 是 replace 模式下被删除的旧记录数
	Replaced int64
}

// Load 解析内容文件，未知字段视为错误以便尽早发现拼写问题。
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("无法解析内容文件: %w", err)
	}
	return &f, nil
}

// records 是校验通过、可以直接写入的记录
type records struct {
	pictures  []*content.Picture
	texts     []*content.Text
	locations []*content.Location
}

// validate 在写入任何记录之前校验整个文件。
func (f *File) validate() (*records, error) {
	out := &records{}
	var errs []error
	for i, e := range f.Pictures {
		p, err := content.NewPicture(content.PictureInput{Component: e.Component, ID: e.ID, ImageURL: e.ImageURL})
		if err != nil {
			errs = append(errs, fmt.Errorf("pictures[%d]: %w", i, err))
			continue
		}
		out.pictures = append(out.pictures, p)
	}
	for i, e := range f.Texts {
		t, err := content.NewText(content.TextInput{Component: e.Component, ID: e.ID, TextDescription: e.TextDescription})
		if err != nil {
			errs = append(errs, fmt.Errorf("texts[%d]: %w", i, err))
			continue
		}
		out.texts = append(out.texts, t)
	}
	for i, e := range f.Locations {
		l, err := content.NewLocation(content.LocationInput{Name: e.Name, Lat: e.Lat, Lng: e.Lng})
		if err != nil {
			errs = append(errs, fmt.Errorf("locations[%d]: %w", i, err))
			continue
		}
		out.locations = append(out.locations, l)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Apply 把内容文件写入仓库。replace 为 true 时，先删除文件中出现过的 Component/ID (Location 为 name) 的旧记录，
// 再写入文件中的全部记录，使重复导入同一个文件不会产生重复记录。
// 文件内同一位置的多条记录会全部保留。
func Apply(ctx context.Context, repo *content.Repository, f *File, replace bool, log *zap.Logger) (Summary, error) {
	var sum Summary
	recs, err := f.validate()
	if err != nil {
		return sum, err
	}

	if replace {
		n, err := recs.clear(ctx, repo)
		if err != nil {
			return sum, err
		}
		sum.Replaced = n
	}

	for _, p := range recs.pictures {
		if _, err := repo.Pictures.Create(ctx, p); err != nil {
			return sum, err
		}
		sum.Pictures++
	}
	for _, t := range recs.texts {
		if _, err := repo.Texts.Create(ctx, t); err != nil {
			return sum, err
		}
		sum.Texts++
	}
	for _, l := range recs.locations {
		if _, err := repo.Locations.Create(ctx, l); err != nil {
			return sum, err
		}
		sum.Locations++
	}

	log.Info("内容导入完成",
		zap.Int("pictures", sum.Pictures),
		zap.Int("texts", sum.Texts),
		zap.Int("locations", sum.Locations),
		zap.Int64("replaced", sum.Replaced))
	return sum, nil
}

// clear 删除文件涉及的每个位置上已有的记录，同一位置只删除一次。
func (r *records) clear(ctx context.Context, repo *content.Repository) (int64, error) {
	var total int64
	seen := make(map[string]bool)
	once := func(kind content.Kind, f content.Filter, del func(content.Filter) (int64, error)) error {
		key := string(kind) + f.String()
		if seen[key] {
			return nil
		}
		seen[key] = true
		n, err := del(f)
		total += n
		return err
	}

	for _, p := range r.pictures {
		f := content.Filter{content.ColumnComponent: p.Component, content.ColumnRecordID: p.ID}
		if err := once(content.KindPicture, f, func(f content.Filter) (int64, error) {
			return deleteExisting(ctx, repo.Pictures, f)
		}); err != nil {
			return total, err
		}
	}
	for _, t := range r.texts {
		f := content.Filter{content.ColumnComponent: t.Component, content.ColumnRecordID: t.ID}
		if err := once(content.KindText, f, func(f content.Filter) (int64, error) {
			return deleteExisting(ctx, repo.Texts, f)
		}); err != nil {
			return total, err
		}
	}
	for _, l := range r.locations {
		f := content.Filter{content.ColumnName: l.Name}
		if err := once(content.KindLocation, f, func(f content.Filter) (int64, error) {
			return deleteExisting(ctx, repo.Locations, f)
		}); err != nil {
			return total, err
		}
	}
	return total, nil
}

// deleteExisting 删除匹配的旧记录，没有旧记录不是错误。
func deleteExisting[R content.Record](ctx context.Context, store content.Store[R], f content.Filter) (int64, error) {
	n, err := store.Delete(ctx, f)
	if errors.Is(err, content.ErrNotFound) {
		return 0, nil
	}
	return n, err
}
