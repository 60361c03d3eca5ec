package content

import (
	"fmt"
	"sort"
	"strings"
)

// 存储列名。gorm 适配器直接把它们作为列名使用，redis 适配器用它们匹配文档。
const (
	ColumnKey         = "id"
	ColumnComponent   = "component"
	ColumnRecordID    = "record_id"
	ColumnImageURL    = "image_url"
	ColumnDescription = "text_description"
	ColumnName        = "name"
	ColumnLat         = "lat"
	ColumnLng         = "lng"
)

// Filter 按列名匹配记录，多个条件之间为 AND 关系。
// 同一个 Filter 类型也用来描述 Update 时要写入的列。
type Filter map[string]any

// Match 判断一组列值是否满足过滤条件。空过滤器匹配一切，调用方需自行拒绝。
func (f Filter) Match(columns Filter) bool {
	for k, want := range f {
		got, ok := columns[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (f Filter) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, f[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// SlotFilter 是 Picture/Text 的删除/查询条件，Component 与 ID 至少提供一个。
type SlotFilter struct {
	Component *string `json:"Component" form:"Component"`
	ID        *int    `json:"ID" form:"ID"`
}

// Filter 校验并转换为存储层的过滤器。
func (s SlotFilter) Filter() (Filter, error) {
	f := Filter{}
	if s.Component != nil {
		if c := strings.TrimSpace(*s.Component); c != "" {
			f[ColumnComponent] = c
		}
	}
	if s.ID != nil {
		f[ColumnRecordID] = *s.ID
	}
	if len(f) == 0 {
		return nil, &ValidationError{Missing: []string{"Component", "ID"}, Msg: "至少需要提供一个过滤条件"}
	}
	return f, nil
}

// LocationFilter 是 Location 的删除/查询条件，name 与 _id 至少提供一个。
type LocationFilter struct {
	Name *string `json:"name" form:"name"`
	Key  *string `json:"_id" form:"_id"`
}

func (l LocationFilter) Filter() (Filter, error) {
	f := Filter{}
	if l.Name != nil {
		if n := strings.TrimSpace(*l.Name); n != "" {
			f[ColumnName] = n
		}
	}
	if l.Key != nil {
		if k := strings.TrimSpace(*l.Key); k != "" {
			f[ColumnKey] = k
		}
	}
	if len(f) == 0 {
		return nil, &ValidationError{Missing: []string{"name", "_id"}, Msg: "至少需要提供一个过滤条件"}
	}
	return f, nil
}
