// Package notify 负责联系表单的邮件通知：SMTP 发送以及同步/队列两种投递方式。
package notify

import (
	"context"
	"errors"

	"github.com/ali-aqib/blog/internal/domain"
)

// ErrDelivery 表示邮件未能发送或未能提交到队列。
var ErrDelivery = errors.New("notify: delivery failed")

// Mailer 发送一封联系邮件。
type Mailer interface {
	Send(ctx context.Context, msg domain.ContactMessage) error
}

// Dispatcher 把联系邮件交给某种投递方式。
// 返回的 ticket 可用于查询后台投递状态，同步投递时为空字符串。
type Dispatcher interface {
	Dispatch(ctx context.Context, msg domain.ContactMessage) (ticket string, err error)
}
