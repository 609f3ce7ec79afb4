package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/middleware"
	"github.com/ali-aqib/blog/internal/service"
)

// 对用户展示的提示
const (
	msgAlreadyRegistered = "You've already signed up with that email, log in instead!"
	msgLoginFailed       = "Invalid email or password, please try again."
)

// AuthHandler 封装了注册、登录和登出
type AuthHandler struct {
	authService  *service.AuthService
	cookieSecure bool
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	if authService == nil {
		panic("AuthService cannot be nil for AuthHandler")
	}
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// RegisterPage 显示注册表单
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	Render(c, http.StatusOK, "register.html", gin.H{"Form": RegisterForm{}})
}

// Register 处理注册。邮箱已注册时不创建用户，带提示重定向到登录页。
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithError(err).Debug("Handler.Register: invalid form")
		Render(c, http.StatusBadRequest, "register.html", gin.H{"Form": form, "Errors": fieldErrors(err)})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), form.Email, form.Name, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			setFlash(c, msgAlreadyRegistered)
			Redirect(c, "/login")
			return
		}
		HandleServiceError(c, err)
		return
	}

	if !h.startSession(c, user.ID) {
		return
	}
	Redirect(c, "/")
}

// LoginPage 显示登录表单
func (h *AuthHandler) LoginPage(c *gin.Context) {
	Render(c, http.StatusOK, "login.html", gin.H{"Form": LoginForm{}})
}

// Login 处理登录。用户不存在和密码错误显示同一条提示。
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "login.html", gin.H{"Form": form, "Errors": fieldErrors(err)})
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if service.IsAuthenticationFailure(err) {
			setFlash(c, msgLoginFailed)
			Render(c, http.StatusUnauthorized, "login.html", gin.H{"Form": LoginForm{Email: form.Email}})
			return
		}
		HandleServiceError(c, err)
		return
	}

	if !h.startSession(c, user.ID) {
		return
	}
	Redirect(c, "/")
}

// Logout 清除会话
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookieSecure)
	Redirect(c, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint) bool {
	token, err := h.authService.IssueSession(userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Handler: failed to issue session")
		HandleServiceError(c, err)
		return false
	}
	middleware.SetSessionCookie(c, token, h.authService.SessionTTL(), h.cookieSecure)
	return true
}
