package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ali-aqib/blog/internal/domain"
)

// InlineDispatcher 在请求内同步发送邮件，并用超时限制阻塞时间。
// 未配置 Redis 时使用。
type InlineDispatcher struct {
	mailer  Mailer
	timeout time.Duration
}

// NewInlineDispatcher 创建 InlineDispatcher 实例。
func NewInlineDispatcher(mailer Mailer, timeout time.Duration) *InlineDispatcher {
	if mailer == nil {
		panic("Mailer cannot be nil for InlineDispatcher")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &InlineDispatcher{mailer: mailer, timeout: timeout}
}

// Dispatch 同步发送，失败时返回包装了 ErrDelivery 的错误。
func (d *InlineDispatcher) Dispatch(ctx context.Context, msg domain.ContactMessage) (string, error) {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	if err := d.mailer.Send(sendCtx, msg); err != nil {
		if errors.Is(err, ErrDelivery) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return "", nil
}
