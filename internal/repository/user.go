package repository

import (
	"context"

	"github.com/ali-aqib/blog/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByEmail 根据邮箱查找用户，不存在时返回 ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID 根据用户 ID 查找用户，不存在时返回 ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Create 在一个事务中检查邮箱唯一性并插入新用户。
	// 邮箱已存在时返回 ErrDuplicateEntry，且不会写入任何数据。
	Create(ctx context.Context, user *domain.User) error
}
