package notify_test

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

var msg = domain.ContactMessage{Name: "Ann", Email: "ann@x.com", Phone: "123", Message: "Hi"}

type fakeMailer struct {
	err         error
	sent        []domain.ContactMessage
	hadDeadline bool
}

func (m *fakeMailer) Send(ctx context.Context, msg domain.ContactMessage) error {
	_, m.hadDeadline = ctx.Deadline()
	m.sent = append(m.sent, msg)
	return m.err
}

type fakeEnqueuer struct {
	err   error
	tasks []*asynq.Task
}

func (e *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{Queue: "default", Type: task.Type()}, nil
}

func TestContactEmailBody(t *testing.T) {
	body := notify.ContactEmailBody(msg)
	assert.Equal(t, "Name: Ann\nEmail: ann@x.com\nPhone: 123\nMessage: Hi\n", body)
}

func TestBuildContactEmail(t *testing.T) {
	email, err := notify.BuildContactEmail("owner@blog.com", msg)
	require.NoError(t, err)
	assert.Equal(t, []string{"<owner@blog.com>"}, email.GetToString())
	assert.Equal(t, []string{"<owner@blog.com>"}, email.GetFromString())

	_, err = notify.BuildContactEmail("not an address", msg)
	assert.Error(t, err)
}

func TestSMTPMailer_Unconfigured(t *testing.T) {
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{Host: "smtp.example.com"})

	err := mailer.Send(context.Background(), msg)

	assert.ErrorIs(t, err, notify.ErrDelivery)
}

func TestInlineDispatcher(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mailer := &fakeMailer{}
		ticket, err := notify.NewInlineDispatcher(mailer, time.Second).Dispatch(context.Background(), msg)

		require.NoError(t, err)
		assert.Empty(t, ticket)
		assert.Len(t, mailer.sent, 1)
		assert.True(t, mailer.hadDeadline, "发送应受超时约束")
	})

	t.Run("failure is wrapped", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("connection refused")}
		_, err := notify.NewInlineDispatcher(mailer, time.Second).Dispatch(context.Background(), msg)

		assert.ErrorIs(t, err, notify.ErrDelivery)
	})
}

func TestQueueDispatcher_Enqueues(t *testing.T) {
	ctx := context.Background()
	enqueuer := &fakeEnqueuer{}
	statusRepo := new(mocks.DeliveryStatusRepository)
	statusRepo.On("SetStatus", ctx, mock.AnythingOfType("string"), domain.DeliveryQueued, notify.StatusTTL).Return(nil).Once()

	ticket, err := notify.NewQueueDispatcher(enqueuer, statusRepo).Dispatch(ctx, msg)

	require.NoError(t, err)
	assert.NotEmpty(t, ticket)
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, tasks.TypeContactEmail, enqueuer.tasks[0].Type())

	payload, err := tasks.ParseContactEmailPayload(enqueuer.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, ticket, payload.Ticket)
	assert.Equal(t, msg, payload.Message)
	statusRepo.AssertExpectations(t)
}

func TestQueueDispatcher_EnqueueFailure(t *testing.T) {
	ctx := context.Background()
	enqueuer := &fakeEnqueuer{err: errors.New("redis down")}
	statusRepo := new(mocks.DeliveryStatusRepository)
	statusRepo.On("SetStatus", ctx, mock.AnythingOfType("string"), domain.DeliveryQueued, notify.StatusTTL).Return(nil).Once()
	statusRepo.On("SetStatus", ctx, mock.AnythingOfType("string"), domain.DeliveryFailed, notify.StatusTTL).Return(nil).Once()

	ticket, err := notify.NewQueueDispatcher(enqueuer, statusRepo).Dispatch(ctx, msg)

	assert.ErrorIs(t, err, notify.ErrDelivery)
	assert.Empty(t, ticket)
	statusRepo.AssertExpectations(t)
}
