// Package policy 定义了写操作的授权谓词。
// 谓词是纯函数，只依赖调用者身份和已解析的目标资源，便于独立测试。
package policy

import (
	"errors"

	"github.com/ali-aqib/blog/internal/domain"
)

var (
	// ErrForbidden 表示授权检查未通过 (HTTP 403)
	ErrForbidden = errors.New("policy: forbidden")
	// ErrNotFound 表示授权检查需要的目标资源不存在 (HTTP 404)
	ErrNotFound = errors.New("policy: target not found")
)

// Identity 是当前请求的操作身份。UserID 为 0 表示匿名访问。
type Identity struct {
	UserID uint
	Name   string
}

// Anonymous 是未登录的身份。
var Anonymous = Identity{}

// IdentityOf 根据会话中解析出的用户构造身份，nil 表示匿名。
func IdentityOf(user *domain.User) Identity {
	if user == nil {
		return Anonymous
	}
	return Identity{UserID: user.ID, Name: user.Name}
}

// Authenticated 判断身份是否已登录。
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

// AdminOnly 当且仅当身份已登录且为管理员时返回 true。
// 用于创建、编辑、删除文章。
func AdminOnly(id Identity) bool {
	return id.Authenticated() && id.UserID == domain.AdminUserID
}

// CommentOwnerOnly 当且仅当身份已登录且是该评论的作者时返回 true。
// comment 为 nil (查找失败) 时拒绝。
func CommentOwnerOnly(id Identity, comment *domain.Comment) bool {
	if comment == nil {
		return false
	}
	return id.Authenticated() && comment.AuthorID == id.UserID
}
