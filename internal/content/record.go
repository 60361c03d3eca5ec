package content

import (
	"strings"
	"time"
)

// Kind 标识三种相互独立的记录类型。
type Kind string

const (
	KindPicture  Kind = "picture"
	KindText     Kind = "text"
	KindLocation Kind = "location"
)

// Meta 由存储层分配，客户端提交的值会被忽略。
type Meta struct {
	// Key 是存储层分配的主键 (UUIDv7)，与客户端提供的 ID 无关
	Key       string    `json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Record 是存储适配器对记录类型的全部要求。
type Record interface {
	Base() *Meta
	// Columns 返回记录在存储层的列值，供过滤匹配使用
	Columns() Filter
	// Apply 写入 Update 产生的列变更
	Apply(changes Filter)
}

// --- Picture ---

// Picture 为某个页面位置 (Component) 提供一张图片。
type Picture struct {
	Meta
	Component string `json:"Component"`
	ID        int    `json:"ID"`
	ImageURL  string `json:"ImageURL"`
}

// PictureInput 是创建 Picture 时客户端提交的数据。
type PictureInput struct {
	Component string `json:"Component" validate:"required"`
	ID        *int   `json:"ID" validate:"required"`
	ImageURL  string `json:"ImageURL" validate:"required,url|startswith=/"`
}

// NewPicture 校验输入并构造 Picture，校验失败时返回 *ValidationError。
func NewPicture(in PictureInput) (*Picture, error) {
	in.Component = strings.TrimSpace(in.Component)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	return &Picture{Component: in.Component, ID: *in.ID, ImageURL: in.ImageURL}, nil
}

func (p *Picture) Base() *Meta { return &p.Meta }

func (p *Picture) Columns() Filter {
	return Filter{
		ColumnKey:       p.Key,
		ColumnComponent: p.Component,
		ColumnRecordID:  p.ID,
		ColumnImageURL:  p.ImageURL,
	}
}

func (p *Picture) Apply(changes Filter) {
	if v, ok := changes[ColumnImageURL].(string); ok {
		p.ImageURL = v
	}
}

// PictureUpdate 用新的 ImageURL 替换所有匹配记录的图片。
type PictureUpdate struct {
	SlotFilter
	ImageURL string `json:"ImageURL" validate:"required,url|startswith=/"`
}

// Changes 校验更新请求，返回过滤条件和要写入的列。
func (u PictureUpdate) Changes() (Filter, Filter, error) {
	f, err := u.SlotFilter.Filter()
	if err != nil {
		return nil, nil, err
	}
	u.ImageURL = strings.TrimSpace(u.ImageURL)
	if err := checkStruct(u); err != nil {
		return nil, nil, err
	}
	return f, Filter{ColumnImageURL: u.ImageURL}, nil
}

// --- Text ---

// Text 为某个页面位置 (Component) 提供一段文字。
type Text struct {
	Meta
	Component       string `json:"Component"`
	ID              int    `json:"ID"`
	TextDescription string `json:"textDescription"`
}

// TextInput 是创建 Text 时客户端提交的数据。
type TextInput struct {
	Component       string `json:"Component" validate:"required"`
	ID              *int   `json:"ID" validate:"required"`
	TextDescription string `json:"textDescription" validate:"required"`
}

func NewText(in TextInput) (*Text, error) {
	in.Component = strings.TrimSpace(in.Component)
	if strings.TrimSpace(in.TextDescription) == "" {
		in.TextDescription = ""
	}
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	return &Text{Component: in.Component, ID: *in.ID, TextDescription: in.TextDescription}, nil
}

func (t *Text) Base() *Meta { return &t.Meta }

func (t *Text) Columns() Filter {
	return Filter{
		ColumnKey:         t.Key,
		ColumnComponent:   t.Component,
		ColumnRecordID:    t.ID,
		ColumnDescription: t.TextDescription,
	}
}

func (t *Text) Apply(changes Filter) {
	if v, ok := changes[ColumnDescription].(string); ok {
		t.TextDescription = v
	}
}

// TextUpdate 用新的文字替换所有匹配记录的内容。
type TextUpdate struct {
	SlotFilter
	TextDescription string `json:"textDescription" validate:"required"`
}

func (u TextUpdate) Changes() (Filter, Filter, error) {
	f, err := u.SlotFilter.Filter()
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(u.TextDescription) == "" {
		u.TextDescription = ""
	}
	if err := checkStruct(u); err != nil {
		return nil, nil, err
	}
	return f, Filter{ColumnDescription: u.TextDescription}, nil
}

// --- Location ---

// Location 是地图上的一个标记点。
type Location struct {
	Meta
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// LocationInput 是创建 Location 时客户端提交的数据。
type LocationInput struct {
	Name string   `json:"name" validate:"required"`
	Lat  *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng  *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func NewLocation(in LocationInput) (*Location, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	return &Location{Name: in.Name, Lat: *in.Lat, Lng: *in.Lng}, nil
}

func (l *Location) Base() *Meta { return &l.Meta }

func (l *Location) Columns() Filter {
	return Filter{
		ColumnKey:  l.Key,
		ColumnName: l.Name,
		ColumnLat:  l.Lat,
		ColumnLng:  l.Lng,
	}
}

func (l *Location) Apply(changes Filter) {
	if v, ok := changes[ColumnLat].(float64); ok {
		l.Lat = v
	}
	if v, ok := changes[ColumnLng].(float64); ok {
		l.Lng = v
	}
}

// LocationUpdate 移动所有匹配的标记点。
type LocationUpdate struct {
	LocationFilter
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func (u LocationUpdate) Changes() (Filter, Filter, error) {
	f, err := u.LocationFilter.Filter()
	if err != nil {
		return nil, nil, err
	}
	if err := checkStruct(u); err != nil {
		return nil, nil, err
	}
	return f, Filter{ColumnLat: *u.Lat, ColumnLng: *u.Lng}, nil
}
