package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/middleware"
	"github.com/ali-aqib/blog/internal/service"
)

const msgLoginToComment = "You need to login or register to comment."

// PostHandler 封装了文章列表、详情、评论提交以及管理员的文章管理
type PostHandler struct {
	postService    *service.PostService
	commentService *service.CommentService
}

// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(postService *service.PostService, commentService *service.CommentService) *PostHandler {
	if postService == nil {
		panic("PostService cannot be nil for PostHandler")
	}
	if commentService == nil {
		panic("CommentService cannot be nil for PostHandler")
	}
	return &PostHandler{postService: postService, commentService: commentService}
}

// Index 首页，按创建顺序列出所有文章
func (h *PostHandler) Index(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Render(c, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

// Show 文章详情页
func (h *PostHandler) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.renderPost(c, http.StatusOK, id, CommentForm{}, nil)
}

// AddComment 提交评论。未登录时不报错，带提示重定向到登录页，评论内容丢弃。
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		setFlash(c, msgLoginToComment)
		Redirect(c, "/login")
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderPost(c, http.StatusBadRequest, id, form, fieldErrors(err))
		return
	}

	if _, err := h.commentService.AddComment(c.Request.Context(), id, user.ID, form.Comment); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			h.renderPost(c, http.StatusBadRequest, id, form, map[string]string{"Comment": "This field is required."})
			return
		}
		HandleServiceError(c, err)
		return
	}
	Redirect(c, postPath(id))
}

// NewPostPage 显示新建文章表单 (仅管理员)
func (h *PostHandler) NewPostPage(c *gin.Context) {
	Render(c, http.StatusOK, "make-post.html", gin.H{"Form": PostForm{}, "IsEdit": false})
}

// Create 创建文章 (仅管理员)
func (h *PostHandler) Create(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "make-post.html", gin.H{"Form": form, "IsEdit": false, "Errors": fieldErrors(err)})
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.postService.CreatePost(c.Request.Context(), form.input(), user.ID); err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			setFlash(c, "A post with that title already exists.")
			Render(c, http.StatusConflict, "make-post.html", gin.H{"Form": form, "IsEdit": false})
			return
		}
		HandleServiceError(c, err)
		return
	}
	Redirect(c, "/")
}

// EditPostPage 显示预填的编辑表单 (仅管理员)
func (h *PostHandler) EditPostPage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Render(c, http.StatusOK, "make-post.html", gin.H{"Form": postFormOf(post), "IsEdit": true, "PostID": id})
}

// Update 保存编辑，作者改为当前管理员 (仅管理员)
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "make-post.html", gin.H{"Form": form, "IsEdit": true, "PostID": id, "Errors": fieldErrors(err)})
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.postService.EditPost(c.Request.Context(), id, form.input(), user.ID); err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			setFlash(c, "A post with that title already exists.")
			Render(c, http.StatusConflict, "make-post.html", gin.H{"Form": form, "IsEdit": true, "PostID": id})
			return
		}
		HandleServiceError(c, err)
		return
	}
	Redirect(c, postPath(id))
}

// Delete 删除文章及其评论 (仅管理员)
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.postService.DeletePost(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	logrus.WithField("post_id", id).Info("Handler.Delete: post deleted")
	Redirect(c, "/")
}

func (h *PostHandler) renderPost(c *gin.Context, code int, id uint, form CommentForm, errs map[string]string) {
	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Render(c, code, "post.html", gin.H{"Post": post, "Form": form, "Errors": errs})
}

func postPath(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}
