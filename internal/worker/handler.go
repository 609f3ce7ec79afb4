package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/notify"
	"github.com/ali-aqib/blog/internal/repository"
	"github.com/ali-aqib/blog/internal/tasks"
)

// ContactEmailHandler 处理联系邮件发送任务
type ContactEmailHandler struct {
	mailer     notify.Mailer
	statusRepo repository.DeliveryStatusRepository
	timeout    time.Duration
}

// NewContactEmailHandler 创建 Handler 实例
func NewContactEmailHandler(mailer notify.Mailer, statusRepo repository.DeliveryStatusRepository, timeout time.Duration) *ContactEmailHandler {
	if mailer == nil {
		panic("Mailer cannot be nil for ContactEmailHandler")
	}
	if statusRepo == nil {
		panic("DeliveryStatusRepository cannot be nil for ContactEmailHandler")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ContactEmailHandler{mailer: mailer, statusRepo: statusRepo, timeout: timeout}
}

// ProcessTask 实现 asynq.Handler 接口。
// 发送结果写入投递状态；失败不重试。
func (h *ContactEmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())

	payload, err := tasks.ParseContactEmailPayload(t)
	if err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	logCtx = logCtx.WithField("ticket", payload.Ticket)
	logCtx.Info("Processing contact email task...")

	sendCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	if err := h.mailer.Send(sendCtx, payload.Message); err != nil {
		logCtx.WithError(err).Error("Contact email delivery failed")
		h.recordStatus(ctx, logCtx, payload.Ticket, domain.DeliveryFailed)
		return fmt.Errorf("send contact email %s: %v: %w", payload.Ticket, err, asynq.SkipRetry)
	}

	h.recordStatus(ctx, logCtx, payload.Ticket, domain.DeliverySent)
	logCtx.Info("Contact email task processed successfully")
	return nil
}

func (h *ContactEmailHandler) recordStatus(ctx context.Context, logCtx *logrus.Entry, ticket string, status domain.DeliveryStatus) {
	if err := h.statusRepo.SetStatus(ctx, ticket, status, notify.StatusTTL); err != nil {
		logCtx.WithError(err).WithField("status", status).Error("Failed to record delivery status")
	}
}
