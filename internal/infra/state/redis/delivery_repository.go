package redisstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ali-aqib/blog/internal/domain"
)

// RedisDeliveryStatusRepository 是 DeliveryStatusRepository 接口的 Redis 实现
type RedisDeliveryStatusRepository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDeliveryStatusRepository 创建 RedisDeliveryStatusRepository 实例
func NewRedisDeliveryStatusRepository(client *redis.Client, keyPrefix string) *RedisDeliveryStatusRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisDeliveryStatusRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "blog:"
	}
	return &RedisDeliveryStatusRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisDeliveryStatusRepository) deliveryKey(ticket string) string {
	return fmt.Sprintf("%scontact:%s:status", r.keyPrefix, ticket)
}

// SetStatus 写入回执状态
func (r *RedisDeliveryStatusRepository) SetStatus(ctx context.Context, ticket string, status domain.DeliveryStatus, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.deliveryKey(ticket), string(status), ttl).Err(); err != nil {
		return fmt.Errorf("redis: set delivery status for ticket %s: %w", ticket, err)
	}
	return nil
}

// GetStatus 读取回执状态，key 不存在时返回 DeliveryUnknown
func (r *RedisDeliveryStatusRepository) GetStatus(ctx context.Context, ticket string) (domain.DeliveryStatus, error) {
	val, err := r.client.Get(ctx, r.deliveryKey(ticket)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.DeliveryUnknown, nil
		}
		return domain.DeliveryUnknown, fmt.Errorf("redis: get delivery status for ticket %s: %w", ticket, err)
	}
	return domain.DeliveryStatus(val), nil
}
