package repository

import (
	"context"

	"github.com/ali-aqib/blog/internal/domain"
)

// PostRepository 定义了文章的存储操作。
type PostRepository interface {
	// FindByID 返回文章，并预加载作者以及按创建顺序排列的评论 (含评论作者)。
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// FindAll 按创建顺序返回所有文章 (含作者)。
	FindAll(ctx context.Context) ([]domain.Post, error)

	// Create 插入新文章。标题冲突时返回 ErrDuplicateEntry。
	Create(ctx context.Context, post *domain.Post) error

	// Update 更新标题、副标题、正文、封面和作者。
	// 文章不存在返回 ErrPostNotFound，标题冲突返回 ErrDuplicateEntry。
	Update(ctx context.Context, post *domain.Post) error

	// Delete 在同一事务中删除文章及其全部评论。
	Delete(ctx context.Context, id uint) error
}
