package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/notify"
	"github.com/ali-aqib/blog/internal/repository"
)

// ContactService 处理联系表单提交。
type ContactService struct {
	dispatcher notify.Dispatcher
	statusRepo repository.DeliveryStatusRepository // 同步投递时为 nil
}

// NewContactService 创建 ContactService 实例。statusRepo 可以为 nil。
func NewContactService(dispatcher notify.Dispatcher, statusRepo repository.DeliveryStatusRepository) *ContactService {
	if dispatcher == nil {
		panic("Dispatcher cannot be nil for ContactService")
	}
	return &ContactService{dispatcher: dispatcher, statusRepo: statusRepo}
}

// Submit 投递联系邮件。投递失败返回 ErrDeliveryFailed，不会向上抛出原始错误。
// 队列模式下返回的 ticket 可用于查询投递状态。
func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) (string, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Phone = strings.TrimSpace(msg.Phone)
	logCtx := logrus.WithFields(logrus.Fields{"name": msg.Name, "email": msg.Email})
	if msg.Name == "" || msg.Email == "" || strings.TrimSpace(msg.Message) == "" {
		return "", ErrInvalidInput
	}

	ticket, err := s.dispatcher.Dispatch(ctx, msg)
	if err != nil {
		if errors.Is(err, notify.ErrDelivery) {
			logCtx.WithError(err).Warn("Contact message delivery failed")
		} else {
			logCtx.WithError(err).Error("Unexpected error dispatching contact message")
		}
		return "", ErrDeliveryFailed
	}

	logCtx.WithField("ticket", ticket).Info("Contact message dispatched")
	return ticket, nil
}

// DeliveryStatus 查询队列模式下的投递状态。
func (s *ContactService) DeliveryStatus(ctx context.Context, ticket string) (domain.DeliveryStatus, error) {
	if s.statusRepo == nil || ticket == "" {
		return domain.DeliveryUnknown, nil
	}
	status, err := s.statusRepo.GetStatus(ctx, ticket)
	if err != nil {
		logrus.WithError(err).WithField("ticket", ticket).Error("Failed to read delivery status")
		return domain.DeliveryUnknown, ErrInternalServer
	}
	return status, nil
}
