package content

import "context"

// Store 是单一记录类型的持久化接口。每个方法只执行一次存储读或写。
type Store[R Record] interface {
	// Create 持久化记录，并回填存储层分配的 Meta。
	Create(ctx context.Context, rec R) (R, error)
	// List 按插入顺序返回全部记录，没有记录时返回空切片。
	List(ctx context.Context) ([]R, error)
	// Find 按插入顺序返回第一条匹配的记录，没有匹配时返回 ErrNotFound。
	Find(ctx context.Context, f Filter) (R, error)
	// Update 将 changes 写入所有匹配的记录，返回更新条数，没有匹配时返回 ErrNotFound。
	Update(ctx context.Context, f Filter, changes Filter) (int64, error)
	// Delete 删除所有匹配的记录，返回删除条数，没有匹配时返回 ErrNotFound。
	Delete(ctx context.Context, f Filter) (int64, error)
}

// Backend 是存储引擎本身，负责连通性检查与资源释放。
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Close() error
}

// Repository 持有三种记录类型的存储，进程启动时构造一次，再传给各个 handler。
type Repository struct {
	Pictures  Store[*Picture]
	Texts     Store[*Text]
	Locations Store[*Location]
	Backend   Backend
}

// Close 释放底层存储连接。
func (r *Repository) Close() error {
	if r == nil || r.Backend == nil {
		return nil
	}
	return r.Backend.Close()
}

// ErrEmptyFilter 在适配器收到空过滤器时返回，正常情况下 handler 已经拦截。
var ErrEmptyFilter error = &ValidationError{Msg: "过滤条件不能为空"}
