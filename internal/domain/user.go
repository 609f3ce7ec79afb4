// Package domain 定义了博客的核心数据模型 (同时作为 GORM 表结构)。
package domain

import "time"

// AdminUserID 是身份序列发出的第一个值，对应的用户即管理员。
const AdminUserID uint = 1

// User 表示一个注册用户。用户创建后不会被修改或删除。
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"type:varchar(250);uniqueIndex:idx_users_email;not null"`
	Password  string    `gorm:"type:varchar(250);not null"` // bcrypt 哈希，盐值内嵌
	Name      string    `gorm:"type:varchar(250);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// IsAdmin 判断该用户是否为管理员。
func (u *User) IsAdmin() bool {
	return u != nil && u.ID == AdminUserID
}
