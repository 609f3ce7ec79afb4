package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/repository"
	"github.com/ali-aqib/blog/internal/tasks"
)

// StatusTTL 是投递状态在 Redis 中保留的时间。
const StatusTTL = 24 * time.Hour

// Enqueuer 是 asynq.Client 中被使用的部分。
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher 把邮件作为 asynq 任务提交，提交成功即返回。
// 实际投递由 worker 完成，结果写入 DeliveryStatusRepository。
type QueueDispatcher struct {
	client     Enqueuer
	statusRepo repository.DeliveryStatusRepository
	queue      string
}

// NewQueueDispatcher 创建 QueueDispatcher 实例。
func NewQueueDispatcher(client Enqueuer, statusRepo repository.DeliveryStatusRepository) *QueueDispatcher {
	if client == nil {
		panic("asynq client cannot be nil for QueueDispatcher")
	}
	if statusRepo == nil {
		panic("DeliveryStatusRepository cannot be nil for QueueDispatcher")
	}
	return &QueueDispatcher{client: client, statusRepo: statusRepo, queue: "default"}
}

// Dispatch 生成回执并提交任务。任务不自动重试。
func (d *QueueDispatcher) Dispatch(ctx context.Context, msg domain.ContactMessage) (string, error) {
	ticket := uuid.NewString()
	logCtx := logrus.WithField("ticket", ticket)

	task, err := tasks.NewContactEmailTask(ticket, msg)
	if err != nil {
		logCtx.WithError(err).Error("Failed to build contact email task")
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	// 先写 queued，避免 worker 比这里更快写入 sent 后被覆盖
	if err := d.statusRepo.SetStatus(ctx, ticket, domain.DeliveryQueued, StatusTTL); err != nil {
		logCtx.WithError(err).Error("Failed to record queued status")
		return "", fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	info, err := d.client.EnqueueContext(ctx, task,
		asynq.TaskID(ticket),
		asynq.Queue(d.queue),
		asynq.MaxRetry(0),
	)
	if err != nil {
		logCtx.WithError(err).Error("Failed to enqueue contact email task")
		_ = d.statusRepo.SetStatus(ctx, ticket, domain.DeliveryFailed, StatusTTL)
		return "", fmt.Errorf("%w: enqueue: %v", ErrDelivery, err)
	}

	logCtx.WithField("queue", info.Queue).Info("Contact email task enqueued")
	return ticket, nil
}
