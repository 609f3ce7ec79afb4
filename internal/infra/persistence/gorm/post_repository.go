package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// FindByID 查找文章并预加载作者和评论
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id ASC") }).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// FindAll 按 ID (即创建顺序) 返回全部文章
func (r *GormPostRepository) FindAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.WithContext(ctx).Preload("Author").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all posts: %w", err)
	}
	return posts, nil
}

// Create 在事务中检查标题唯一性并插入文章
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := titleTaken(tx, post.Title, 0)
		if err != nil {
			return err
		}
		if taken {
			return repository.ErrDuplicateEntry
		}
		// 只插入文章本身，作者和评论关联不做 upsert
		if err := tx.Omit("Author", "Comments").Create(post).Error; err != nil {
			if isDuplicateEntryError(err) {
				return repository.ErrDuplicateEntry
			}
			return fmt.Errorf("gorm: create post (title: %s): %w", post.Title, err)
		}
		return nil
	})
}

// Update 更新文章的可编辑字段，作者改为当前编辑者
func (r *GormPostRepository) Update(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Post
		if err := tx.First(&existing, post.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrPostNotFound
			}
			return fmt.Errorf("gorm: find post by id %d: %w", post.ID, err)
		}
		taken, err := titleTaken(tx, post.Title, post.ID)
		if err != nil {
			return err
		}
		if taken {
			return repository.ErrDuplicateEntry
		}
		err = tx.Model(&existing).Updates(map[string]interface{}{
			"title":     post.Title,
			"subtitle":  post.Subtitle,
			"body":      post.Body,
			"img_url":   post.ImgURL,
			"author_id": post.AuthorID,
		}).Error
		if err != nil {
			if isDuplicateEntryError(err) {
				return repository.ErrDuplicateEntry
			}
			return fmt.Errorf("gorm: update post %d: %w", post.ID, err)
		}
		// 创建日期保持不变
		post.Date = existing.Date
		post.CreatedAt = existing.CreatedAt
		post.UpdatedAt = existing.UpdatedAt
		return nil
	})
}

// Delete 删除文章及其全部评论。
// 外键上也声明了 ON DELETE CASCADE，这里显式删除，使不强制外键的 SQLite 连接同样不会留下孤儿评论。
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: count post %d: %w", id, err)
		}
		if count == 0 {
			return repository.ErrPostNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("gorm: delete comments of post %d: %w", id, err)
		}
		if err := tx.Delete(&domain.Post{}, id).Error; err != nil {
			return fmt.Errorf("gorm: delete post %d: %w", id, err)
		}
		return nil
	})
}

// titleTaken 检查除 exceptID 之外是否已有同名文章
func titleTaken(tx *gorm.DB, title string, exceptID uint) (bool, error) {
	var count int64
	q := tx.Model(&domain.Post{}).Where("title = ?", title)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("gorm: count posts by title '%s': %w", title, err)
	}
	return count > 0, nil
}
