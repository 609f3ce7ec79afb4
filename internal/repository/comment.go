package repository

import (
	"context"

	"github.com/ali-aqib/blog/internal/domain"
)

// CommentRepository 定义了评论的存储操作。
type CommentRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)

	// Create 插入评论。所属文章不存在时返回 ErrPostNotFound。
	Create(ctx context.Context, comment *domain.Comment) error

	Delete(ctx context.Context, id uint) error

	// CountByPost 统计某篇文章下的评论数量。
	CountByPost(ctx context.Context, postID uint) (int64, error)
}
