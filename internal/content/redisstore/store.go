// Package redisstore 把内容记录作为 JSON 文档保存在 Redis 中。
//
// 每种记录类型占用两个键：
//
//	<prefix>:<kind>:docs  Hash，field 为记录主键，value 为记录的 JSON
//	<prefix>:<kind>:order List，按插入顺序保存主键
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/impact-report-backend/internal/content"
	"github.com/redis/go-redis/v9"
)

// 乐观事务在 WATCH 的键被并发修改时重试的次数
const maxTxRetry = 3

// Store 是基于 Redis 的通用 content.Store 实现。
type Store[R content.Record] struct {
	rdb       *redis.Client
	kind      content.Kind
	docsKey   string
	orderKey  string
	newRecord func() R
}

var _ content.Store[*content.Location] = (*Store[*content.Location])(nil)

func newStore[R content.Record](rdb *redis.Client, prefix string, kind content.Kind, newRecord func() R) *Store[R] {
	base := fmt.Sprintf("%s:%s", prefix, kind)
	return &Store[R]{
		rdb:       rdb,
		kind:      kind,
		docsKey:   base + ":docs",
		orderKey:  base + ":order",
		newRecord: newRecord,
	}
}

func (s *Store[R]) Create(ctx context.Context, rec R) (R, error) {
	var zero R
	key, err := content.NewKey()
	if err != nil {
		return zero, err
	}
	now := time.Now().UTC()
	stored := content.Meta{Key: key, CreatedAt: now, UpdatedAt: now}

	// 写入成功之前，调用方的记录不带主键和时间戳
	meta := rec.Base()
	prev := *meta
	*meta = stored
	doc, err := json.Marshal(rec)
	*meta = prev
	if err != nil {
		return zero, fmt.Errorf("无法序列化 %s: %w", s.kind, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, s.docsKey, key, doc)
	pipe.RPush(ctx, s.orderKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return zero, content.WrapStorage(s.kind, "create", err)
	}
	*meta = stored
	return rec, nil
}

func (s *Store[R]) List(ctx context.Context) ([]R, error) {
	records, err := s.loadAll(ctx, s.rdb)
	if err != nil {
		return nil, content.WrapStorage(s.kind, "list", err)
	}
	return records, nil
}

func (s *Store[R]) Find(ctx context.Context, f content.Filter) (R, error) {
	var zero R
	if len(f) == 0 {
		return zero, content.ErrEmptyFilter
	}
	records, err := s.loadAll(ctx, s.rdb)
	if err != nil {
		return zero, content.WrapStorage(s.kind, "find", err)
	}
	for _, rec := range records {
		if f.Match(rec.Columns()) {
			return rec, nil
		}
	}
	return zero, content.NotFound(s.kind, f)
}

func (s *Store[R]) Update(ctx context.Context, f content.Filter, changes content.Filter) (int64, error) {
	if len(f) == 0 {
		return 0, content.ErrEmptyFilter
	}
	if len(changes) == 0 {
		return 0, content.NewValidationError("没有需要更新的字段")
	}

	var updated int64
	err := s.watch(ctx, func(tx *redis.Tx) error {
		records, err := s.loadAll(ctx, tx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		docs := make([]any, 0)
		for _, rec := range records {
			if !f.Match(rec.Columns()) {
				continue
			}
			rec.Apply(changes)
			rec.Base().UpdatedAt = now
			doc, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("无法序列化 %s: %w", s.kind, err)
			}
			docs = append(docs, rec.Base().Key, doc)
		}
		updated = int64(len(docs) / 2)
		if updated == 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.docsKey, docs...)
			return nil
		})
		return err
	})
	if err != nil {
		return 0, content.WrapStorage(s.kind, "update", err)
	}
	if updated == 0 {
		return 0, content.NotFound(s.kind, f)
	}
	return updated, nil
}

func (s *Store[R]) Delete(ctx context.Context, f content.Filter) (int64, error) {
	if len(f) == 0 {
		return 0, content.ErrEmptyFilter
	}

	var deleted int64
	err := s.watch(ctx, func(tx *redis.Tx) error {
		records, err := s.loadAll(ctx, tx)
		if err != nil {
			return err
		}
		keys := make([]string, 0)
		for _, rec := range records {
			if f.Match(rec.Columns()) {
				keys = append(keys, rec.Base().Key)
			}
		}
		deleted = int64(len(keys))
		if deleted == 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, s.docsKey, keys...)
			for _, key := range keys {
				pipe.LRem(ctx, s.orderKey, 1, key)
			}
			return nil
		})
		return err
	})
	if err != nil {
		return 0, content.WrapStorage(s.kind, "delete", err)
	}
	if deleted == 0 {
		return 0, content.NotFound(s.kind, f)
	}
	return deleted, nil
}

// watch 在 WATCH 两个键的前提下执行 fn，键被并发修改时重试。
func (s *Store[R]) watch(ctx context.Context, fn func(tx *redis.Tx) error) error {
	var err error
	for i := 0; i < maxTxRetry; i++ {
		err = s.rdb.Watch(ctx, fn, s.docsKey, s.orderKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

// docReader 是 loadAll 需要的读命令，*redis.Client 与 *redis.Tx 均满足
type docReader interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
}

// loadAll 按插入顺序读取全部文档。order 中存在但 docs 中缺失的主键会被跳过。
func (s *Store[R]) loadAll(ctx context.Context, c docReader) ([]R, error) {
	keys, err := c.LRange(ctx, s.orderKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []R{}, nil
	}
	docs, err := c.HMGet(ctx, s.docsKey, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]R, 0, len(docs))
	for i, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			continue
		}
		rec := s.newRecord()
		if err := json.Unmarshal([]byte(raw), rec); err != nil {
			return nil, fmt.Errorf("解析 %s 文档 %s 失败: %w", s.kind, keys[i], err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// NewRepository 在 Redis 上构造内容仓库，prefix 用于隔离不同站点/环境的键。
func NewRepository(rdb *redis.Client, prefix string) *content.Repository {
	return &content.Repository{
		Pictures:  newStore(rdb, prefix, content.KindPicture, func() *content.Picture { return new(content.Picture) }),
		Texts:     newStore(rdb, prefix, content.KindText, func() *content.Text { return new(content.Text) }),
		Locations: newStore(rdb, prefix, content.KindLocation, func() *content.Location { return new(content.Location) }),
		Backend:   &backend{rdb: rdb},
	}
}

type backend struct {
	rdb *redis.Client
}

func (b *backend) Name() string { return "redis" }

func (b *backend) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *backend) Close() error {
	return b.rdb.Close()
}
