package domain

import "time"

// CommentTimeLayout 生成形如 "at 14:05 on March 04, 2025" 的评论时间。
const CommentTimeLayout = "at 15:04 on January 02, 2006"

// Comment 表示某篇文章下的一条评论。作者和所属文章在创建后不可变。
type Comment struct {
	ID          uint   `gorm:"primaryKey"`
	Text        string `gorm:"type:text;not null"`
	CommentTime string `gorm:"type:varchar(250);not null"`

	AuthorID uint `gorm:"index;not null"`
	Author   User `gorm:"foreignKey:AuthorID"`

	PostID uint `gorm:"index;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// FormatCommentTime 按 CommentTimeLayout 格式化时间。
func FormatCommentTime(t time.Time) string {
	return t.Format(CommentTimeLayout)
}
