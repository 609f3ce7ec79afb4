package repository

import (
	"context"
	"time"

	"github.com/ali-aqib/blog/internal/domain"
)

// DeliveryStatusRepository 记录后台发送的联系邮件的投递状态，通常由 Redis 实现。
type DeliveryStatusRepository interface {
	// SetStatus 写入某个回执 (ticket) 的状态，ttl 之后自动过期。
	SetStatus(ctx context.Context, ticket string, status domain.DeliveryStatus, ttl time.Duration) error

	// GetStatus 读取回执状态。未知或已过期的回执返回 domain.DeliveryUnknown 和 nil。
	GetStatus(ctx context.Context, ticket string) (domain.DeliveryStatus, error)
}
