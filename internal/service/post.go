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

// PostInput 是创建或编辑文章时可写的字段。
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

func (in PostInput) normalized() PostInput {
	return PostInput{
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		Body:     in.Body,
		ImgURL:   strings.TrimSpace(in.ImgURL),
	}
}

// PostService 负责文章的增删改查。权限检查由路由上的授权中间件完成。
type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

// NewPostService 创建 PostService 实例。
func NewPostService(postRepo repository.PostRepository) *PostService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo, now: time.Now}
}

// CreatePost 以 authorID 为作者创建文章，标题重复时返回 ErrDuplicateTitle。
func (s *PostService) CreatePost(ctx context.Context, in PostInput, authorID uint) (*domain.Post, error) {
	in = in.normalized()
	logCtx := logrus.WithFields(logrus.Fields{"title": in.Title, "author_id": authorID})
	if in.Title == "" {
		return nil, ErrInvalidInput
	}

	post := &domain.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImgURL:   in.ImgURL,
		AuthorID: authorID,
		Date:     domain.FormatPostDate(s.now()),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Create post rejected: duplicate title")
			return nil, ErrDuplicateTitle
		}
		logCtx.WithError(err).Error("Failed to save new post")
		return nil, ErrInternalServer
	}

	logCtx.WithField("post_id", post.ID).Info("Post created successfully")
	return post, nil
}

// GetPost 返回文章及其评论。
func (s *PostService) GetPost(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", id).Error("GetPost: repository error")
		return nil, ErrInternalServer
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListPosts 按创建顺序返回所有文章。
func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("ListPosts: repository error")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// EditPost 更新文章内容，并把作者改为当前编辑者。创建日期保持不变。
func (s *PostService) EditPost(ctx context.Context, id uint, in PostInput, newAuthorID uint) (*domain.Post, error) {
	in = in.normalized()
	logCtx := logrus.WithFields(logrus.Fields{"post_id": id, "author_id": newAuthorID})
	if in.Title == "" {
		return nil, ErrInvalidInput
	}

	post := &domain.Post{
		ID:       id,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImgURL:   in.ImgURL,
		AuthorID: newAuthorID,
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			logCtx.Warn("Edit post failed: post not found")
			return nil, ErrPostNotFound
		case errors.Is(err, repository.ErrDuplicateEntry):
			logCtx.WithField("title", in.Title).Warn("Edit post rejected: duplicate title")
			return nil, ErrDuplicateTitle
		}
		logCtx.WithError(err).Error("Failed to update post")
		return nil, ErrInternalServer
	}

	logCtx.Info("Post edited successfully")
	return post, nil
}

// DeletePost 删除文章及其全部评论。
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("post_id", id)
	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			logCtx.Warn("Delete post failed: post not found")
			return ErrPostNotFound
		}
		logCtx.WithError(err).Error("Failed to delete post")
		return ErrInternalServer
	}
	logCtx.Info("Post and its comments deleted")
	return nil
}
