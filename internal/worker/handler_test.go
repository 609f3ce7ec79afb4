package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/notify"
	"github.com/ali-aqib/blog/internal/repository/mocks"
	"github.com/ali-aqib/blog/internal/tasks"
)

type stubMailer struct{ err error }

func (m stubMailer) Send(context.Context, domain.ContactMessage) error { return m.err }

func contactTask(t *testing.T) *asynq.Task {
	t.Helper()
	task, err := tasks.NewContactEmailTask("t-1", domain.ContactMessage{Name: "Ann", Email: "ann@x.com", Message: "Hi"})
	require.NoError(t, err)
	return task
}

func TestContactEmailHandler_Sent(t *testing.T) {
	statusRepo := new(mocks.DeliveryStatusRepository)
	statusRepo.On("SetStatus", mock.Anything, "t-1", domain.DeliverySent, notify.StatusTTL).Return(nil).Once()
	h := NewContactEmailHandler(stubMailer{}, statusRepo, time.Second)

	err := h.ProcessTask(context.Background(), contactTask(t))

	assert.NoError(t, err)
	statusRepo.AssertExpectations(t)
}

func TestContactEmailHandler_FailedIsNotRetried(t *testing.T) {
	statusRepo := new(mocks.DeliveryStatusRepository)
	statusRepo.On("SetStatus", mock.Anything, "t-1", domain.DeliveryFailed, notify.StatusTTL).Return(nil).Once()
	h := NewContactEmailHandler(stubMailer{err: errors.New("auth failed")}, statusRepo, time.Second)

	err := h.ProcessTask(context.Background(), contactTask(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	statusRepo.AssertExpectations(t)
}

func TestContactEmailHandler_BadPayload(t *testing.T) {
	statusRepo := new(mocks.DeliveryStatusRepository)
	h := NewContactEmailHandler(stubMailer{}, statusRepo, time.Second)

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeContactEmail, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	statusRepo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
