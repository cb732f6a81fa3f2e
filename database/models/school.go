package models

import "time"

// School 学校记录
// Image 列保存存储层的不透明标识符（删除句柄），对外展示的 URL 由 API 层拼接。
type School struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	Address string  `gorm:"not null" json:"address"`
	City    string  `gorm:"not null" json:"city"`
	State   string  `gorm:"not null" json:"state"`
	Contact string  `gorm:"not null" json:"contact"`
	EmailID string  `gorm:"column:email_id;not null" json:"email_id"`
	Image   *string `json:"image"`

	// 探测到的图片尺寸，仅供参考
	ImageWidth  int `json:"-"`
	ImageHeight int `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName 指定表名，与原始 schema 保持一致
func (School) TableName() string {
	return "schools"
}

// HasImage 是否关联图片资源
func (s *School) HasImage() bool {
	return s.Image != nil && *s.Image != ""
}
