package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/policy"
	"github.com/ali-aqib/blog/internal/service"
)

const (
	// SessionCookieName 是保存会话令牌的 Cookie 名
	SessionCookieName = "session"
	currentUserKey    = "current_user"
)

// SessionResolver 把会话令牌解析为用户，由 AuthService 实现。
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}

// Session 返回一个 Gin 中间件，从 Cookie 中解析当前用户。
// 没有 Cookie 或令牌无效时按匿名处理，不会中断请求。
// secure 需与写入会话 Cookie 时一致，否则浏览器不会接受清除。
func Session(resolver SessionResolver, secure bool) gin.HandlerFunc {
	if resolver == nil {
		panic("SessionResolver cannot be nil for Session middleware")
	}

	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidSession) {
				logrus.Debug("Session middleware: invalid session cookie, clearing")
				ClearSessionCookie(c, secure)
			} else {
				logrus.WithError(err).Warn("Session middleware: failed to resolve session")
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		logrus.WithField("user_id", user.ID).Debug("Session middleware: user resolved from session")
		c.Next()
	}
}

// CurrentUser 返回当前登录用户，匿名访问时返回 nil。
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// CurrentIdentity 返回当前请求的操作身份。
func CurrentIdentity(c *gin.Context) policy.Identity {
	return policy.IdentityOf(CurrentUser(c))
}

// SetSessionCookie 写入会话 Cookie，建立登录态。
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie 清除会话 Cookie。
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
