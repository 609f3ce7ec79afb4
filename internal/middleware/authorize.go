package middleware

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/policy"
	"github.com/ali-aqib/blog/internal/service"
)

const targetCommentKey = "target_comment"

// Check 对当前身份做一次授权判断。
// 返回 nil 表示放行，policy.ErrForbidden / policy.ErrNotFound 表示拒绝，其他错误视为内部错误。
type Check func(c *gin.Context, id policy.Identity) error

// CommentLookup 按 ID 查找评论，由 CommentService.GetComment 实现。
type CommentLookup func(ctx context.Context, id uint) (*domain.Comment, error)

// Guard 把授权谓词包装成路由中间件。Deny 负责渲染拒绝响应 (403/404/500)。
type Guard struct {
	Deny func(c *gin.Context, err error)
}

// Authorize 返回执行 check 的中间件，拒绝时中断处理链，不做重定向。
func (g Guard) Authorize(check Check) gin.HandlerFunc {
	if check == nil {
		panic("check cannot be nil for Authorize middleware")
	}
	if g.Deny == nil {
		panic("Deny handler cannot be nil for Guard")
	}

	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if err := check(c, id); err != nil {
			logCtx := logrus.WithFields(logrus.Fields{"user_id": id.UserID, "path": c.Request.URL.Path})
			if errors.Is(err, policy.ErrForbidden) || errors.Is(err, policy.ErrNotFound) {
				logCtx.WithError(err).Warn("Authorize middleware: access denied")
			} else {
				logCtx.WithError(err).Error("Authorize middleware: check failed")
			}
			g.Deny(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 只允许管理员通过 (AdminOnly)。
func (g Guard) RequireAdmin() gin.HandlerFunc {
	return g.Authorize(func(c *gin.Context, id policy.Identity) error {
		if !policy.AdminOnly(id) {
			return policy.ErrForbidden
		}
		return nil
	})
}

// RequireCommentOwner 只允许评论作者通过 (CommentOwnerOnly)。
// 匿名访问直接拒绝，不查询评论；评论不存在时以 404 拒绝。
// 通过后评论对象保存在上下文中，可用 TargetComment 取出。
func (g Guard) RequireCommentOwner(lookup CommentLookup) gin.HandlerFunc {
	if lookup == nil {
		panic("CommentLookup cannot be nil for RequireCommentOwner")
	}
	return g.Authorize(func(c *gin.Context, id policy.Identity) error {
		if !id.Authenticated() {
			return policy.ErrForbidden
		}
		commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return policy.ErrNotFound
		}
		comment, err := lookup(c.Request.Context(), uint(commentID))
		if err != nil {
			if errors.Is(err, service.ErrCommentNotFound) {
				return policy.ErrNotFound
			}
			return err
		}
		if !policy.CommentOwnerOnly(id, comment) {
			return policy.ErrForbidden
		}
		c.Set(targetCommentKey, comment)
		return nil
	})
}

// TargetComment 返回 RequireCommentOwner 已解析的评论。
func TargetComment(c *gin.Context) *domain.Comment {
	v, ok := c.Get(targetCommentKey)
	if !ok {
		return nil
	}
	comment, _ := v.(*domain.Comment)
	return comment
}
