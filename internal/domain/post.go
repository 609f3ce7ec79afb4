package domain

import "time"

// PostDateLayout 是文章创建日期的展示格式，例如 "March 04, 2025"。
const PostDateLayout = "January 02, 2006"

// Post 表示一篇博客文章。
// Date 在创建时写入，编辑时不会重新生成。
type Post struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"type:varchar(250);uniqueIndex:idx_blog_posts_title;not null"`
	Subtitle string `gorm:"type:varchar(250);not null"`
	Date     string `gorm:"type:varchar(250);not null"`
	Body     string `gorm:"type:text;not null"`
	ImgURL   string `gorm:"column:img_url;type:varchar(250);not null"`

	AuthorID uint `gorm:"index;not null"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 保持与原有数据库一致的表名。
func (Post) TableName() string {
	return "blog_posts"
}

// FormatPostDate 按 PostDateLayout 格式化日期。
func FormatPostDate(t time.Time) string {
	return t.Format(PostDateLayout)
}
