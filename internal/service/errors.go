package service

import "errors"

var (
	// 认证相关。ErrUserNotFound 和 ErrWrongPassword 只在内部区分，对用户展示同一条提示。
	ErrUserNotFound   = errors.New("user not found")
	ErrWrongPassword  = errors.New("wrong password")
	ErrDuplicateEmail = errors.New("registration failed: email already registered")
	ErrInvalidSession = errors.New("invalid or expired session")

	// 内容相关
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrDuplicateTitle  = errors.New("a post with that title already exists")

	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
)

// IsAuthenticationFailure 判断错误是否属于登录失败 (用户不存在或密码错误)。
func IsAuthenticationFailure(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrWrongPassword)
}

// ErrDeliveryFailed 表示联系邮件未能发送或未能提交到队列。
var ErrDeliveryFailed = errors.New("message could not be delivered")
