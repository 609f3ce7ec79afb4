package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/repository"
)

// GormCommentRepository 是 CommentRepository 接口的 GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository 创建 GormCommentRepository 实例
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

// FindByID 实现根据评论 ID 查找评论 (含作者)
func (r *GormCommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("gorm: find comment by id %d: %w", id, err)
	}
	return &comment, nil
}

// Create 插入评论，作者和文章必须在同一事务内存在
func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Post{}).Where("id = ?", comment.PostID).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: count post %d: %w", comment.PostID, err)
		}
		if count == 0 {
			return repository.ErrPostNotFound
		}
		if err := tx.Model(&domain.User{}).Where("id = ?", comment.AuthorID).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: count user %d: %w", comment.AuthorID, err)
		}
		if count == 0 {
			return fmt.Errorf("gorm: comment author %d does not exist", comment.AuthorID)
		}
		if err := tx.Omit("Author").Create(comment).Error; err != nil {
			return fmt.Errorf("gorm: create comment on post %d: %w", comment.PostID, err)
		}
		return nil
	})
}

// Delete 删除评论，不存在时返回 ErrCommentNotFound
func (r *GormCommentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete comment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}
	return nil
}

// CountByPost 统计文章下的评论数
func (r *GormCommentRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count comments of post %d: %w", postID, err)
	}
	return count, nil
}
