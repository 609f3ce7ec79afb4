package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/repository"
)

// CommentService 负责评论的创建、查询和删除。
type CommentService struct {
	commentRepo repository.CommentRepository
	now         func() time.Time
}

// NewCommentService 创建 CommentService 实例。
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	if commentRepo == nil {
		panic("CommentRepository cannot be nil for CommentService")
	}
	return &CommentService{commentRepo: commentRepo, now: time.Now}
}

// AddComment 以 authorID 的身份在文章下发表评论。文章不存在时返回 ErrPostNotFound。
func (s *CommentService) AddComment(ctx context.Context, postID, authorID uint, text string) (*domain.Comment, error) {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": postID, "author_id": authorID})
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	comment := &domain.Comment{
		Text:        text,
		CommentTime: domain.FormatCommentTime(s.now()),
		AuthorID:    authorID,
		PostID:      postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logCtx.Warn("Add comment failed: post not found")
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to save comment")
		return nil, ErrInternalServer
	}

	logCtx.WithField("comment_id", comment.ID).Info("Comment added")
	return comment, nil
}

// GetComment 查找评论，不存在时返回 ErrCommentNotFound。
func (s *CommentService) GetComment(ctx context.Context, id uint) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		logrus.WithError(err).WithField("comment_id", id).Error("GetComment: repository error")
		return nil, ErrInternalServer
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

// DeleteComment 删除评论。
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("comment_id", id)
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			logCtx.Warn("Delete comment failed: comment not found")
			return ErrCommentNotFound
		}
		logCtx.WithError(err).Error("Failed to delete comment")
		return ErrInternalServer
	}
	logCtx.Info("Comment deleted")
	return nil
}
