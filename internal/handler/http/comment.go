package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ali-aqib/blog/internal/middleware"
	"github.com/ali-aqib/blog/internal/policy"
	"github.com/ali-aqib/blog/internal/service"
)

// CommentHandler 处理评论删除
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler 创建 CommentHandler 实例
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	if commentService == nil {
		panic("CommentService cannot be nil for CommentHandler")
	}
	return &CommentHandler{commentService: commentService}
}

// Delete 删除评论并回到所属文章。
// 必须挂在 RequireCommentOwner 之后：它确认调用者是作者，并把评论放进上下文。
func (h *CommentHandler) Delete(c *gin.Context) {
	comment := middleware.TargetComment(c)
	if comment == nil {
		HandleServiceError(c, policy.ErrForbidden)
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), comment.ID); err != nil {
		HandleServiceError(c, err)
		return
	}
	Redirect(c, postPath(comment.PostID))
}
