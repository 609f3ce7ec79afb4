package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/repository"
	"github.com/ali-aqib/blog/internal/repository/mocks"
	"github.com/ali-aqib/blog/internal/service"
)

func TestCommentService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		commentService := service.NewCommentService(mockCommentRepo)
		mockCommentRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.PostID == 1 && c.AuthorID == 2 && c.Text == "Nice" && c.CommentTime != ""
		})).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Comment).ID = 10 }).
			Return(nil).
			Once()

		comment, err := commentService.AddComment(ctx, 1, 2, "Nice")

		require.NoError(t, err)
		assert.Equal(t, uint(10), comment.ID)
		mockCommentRepo.AssertExpectations(t)
	})

	t.Run("blank text", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		commentService := service.NewCommentService(mockCommentRepo)

		_, err := commentService.AddComment(ctx, 1, 2, " \n ")

		assert.ErrorIs(t, err, service.ErrInvalidInput)
		mockCommentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("post missing", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		commentService := service.NewCommentService(mockCommentRepo)
		mockCommentRepo.On("Create", ctx, mock.Anything).Return(repository.ErrPostNotFound).Once()

		_, err := commentService.AddComment(ctx, 999, 2, "Nice")

		assert.ErrorIs(t, err, service.ErrPostNotFound)
	})

	t.Run("unexpected failure", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		commentService := service.NewCommentService(mockCommentRepo)
		mockCommentRepo.On("Create", ctx, mock.Anything).Return(errors.New("disk full")).Once()

		_, err := commentService.AddComment(ctx, 1, 2, "Nice")

		assert.ErrorIs(t, err, service.ErrInternalServer)
	})
}

func TestCommentService_GetComment(t *testing.T) {
	ctx := context.Background()
	mockCommentRepo := new(mocks.CommentRepository)
	commentService := service.NewCommentService(mockCommentRepo)

	mockCommentRepo.On("FindByID", ctx, uint(1)).Return(&domain.Comment{ID: 1, AuthorID: 2}, nil).Once()
	mockCommentRepo.On("FindByID", ctx, uint(2)).Return(nil, repository.ErrCommentNotFound).Once()

	comment, err := commentService.GetComment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(2), comment.AuthorID)

	_, err = commentService.GetComment(ctx, 2)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}

func TestCommentService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	mockCommentRepo := new(mocks.CommentRepository)
	commentService := service.NewCommentService(mockCommentRepo)

	mockCommentRepo.On("Delete", ctx, uint(1)).Return(nil).Once()
	mockCommentRepo.On("Delete", ctx, uint(2)).Return(repository.ErrCommentNotFound).Once()

	assert.NoError(t, commentService.DeleteComment(ctx, 1))
	assert.ErrorIs(t, commentService.DeleteComment(ctx, 2), service.ErrCommentNotFound)
	mockCommentRepo.AssertExpectations(t)
}
